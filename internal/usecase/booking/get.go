package booking

import (
	"context"

	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/models"
)

type Get struct {
	repo domain.Repository
}

func NewGet(repo domain.Repository) *Get {
	return &Get{repo: repo}
}

// Execute loads one appointment. Not-found wins over not-authorized so a
// foreign clinic cannot probe which ids exist.
func (uc *Get) Execute(
	ctx context.Context,
	clinicID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.ClinicID != clinicID {
		return nil, httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}

	return ap, nil
}

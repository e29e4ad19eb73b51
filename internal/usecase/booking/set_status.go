package booking

import (
	"context"

	"github.com/clinicbook/clinic-scheduler/internal/audit"
	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/models"
)

type SetStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetStatus(repo domain.Repository, audit *audit.Dispatcher) *SetStatus {
	return &SetStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute updates the appointment status. Order of checks: unknown status,
// then existence (404), then clinic ownership (403).
func (uc *SetStatus) Execute(
	ctx context.Context,
	clinicID uint,
	userID uint,
	appointmentID uint,
	status domain.Status,
) (*models.Appointment, error) {

	if !status.Valid() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.ClinicID != clinicID {
		return nil, httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}

	ap.Status = string(status)
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": status},
	})

	return ap, nil
}

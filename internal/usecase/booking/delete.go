package booking

import (
	"context"

	"github.com/clinicbook/clinic-scheduler/internal/audit"
	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
)

type Delete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDelete(repo domain.Repository, audit *audit.Dispatcher) *Delete {
	return &Delete{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Delete) Execute(
	ctx context.Context,
	clinicID uint,
	userID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if ap.ClinicID != clinicID {
		return httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}

package booking

import (
	"context"

	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/models"
)

type ListByClinic struct {
	repo domain.Repository
}

func NewListByClinic(repo domain.Repository) *ListByClinic {
	return &ListByClinic{repo: repo}
}

func (uc *ListByClinic) Execute(
	ctx context.Context,
	callerClinicID uint,
	clinicID uint,
) ([]models.Appointment, error) {

	if callerClinicID != clinicID {
		return nil, httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}

	return uc.repo.ListAppointmentsByClinic(ctx, clinicID)
}

package booking

import (
	"context"

	"github.com/clinicbook/clinic-scheduler/internal/audit"
	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ClinicID uint

	PatientName  string
	PatientPhone string

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// Create is the booking engine. It holds the slot invariant for both
// storage backends: within a clinic at most one non-cancelled appointment
// may exist for a given (date, time) pair.
type Create struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreate(repo domain.Repository, audit *audit.Dispatcher) *Create {
	return &Create{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	var created *models.Appointment

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		// 1. Clinic must exist and be active.
		if _, err := tx.GetActiveClinic(ctx, in.ClinicID); err != nil {
			return err
		}

		// 2. Slot must be free. The check and the insert below share the
		// transaction; the partial unique index backs this up against
		// concurrent bookings.
		if err := tx.AssertSlotFree(ctx, in.ClinicID, in.Date, in.Time); err != nil {
			return err
		}

		// 3. Patient keyed on (clinic, phone); name refreshed on repeat.
		patient, err := tx.UpsertPatient(ctx, in.ClinicID, in.PatientName, in.PatientPhone)
		if err != nil {
			return err
		}

		// 4. New appointment starts pending.
		ap := &models.Appointment{
			ClinicID:  in.ClinicID,
			PatientID: patient.ID,
			Date:      in.Date,
			Time:      in.Time,
			Notes:     in.Notes,
			Status:    string(domain.InitialStatus()),
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		ap.Patient = *patient
		created = ap
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			uc.audit.Dispatch(audit.Event{
				ClinicID: in.ClinicID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"date": in.Date, "time": in.Time},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	return created, nil
}

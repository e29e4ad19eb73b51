package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/mirror"
	"github.com/clinicbook/clinic-scheduler/internal/models"
)

// AppointmentMirrorRepository satisfies the booking contract over the Local
// Mirror Store, so the engine's invariant runs unchanged in demo mode.
type AppointmentMirrorRepository struct {
	store *mirror.Store
}

func NewAppointmentMirrorRepository(store *mirror.Store) *AppointmentMirrorRepository {
	return &AppointmentMirrorRepository{store: store}
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

// InTx runs fn directly: the mirror store has no transactions, only
// sequential read-modify-write. Single-user demo mode makes that safe.
func (r *AppointmentMirrorRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return fn(r)
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *AppointmentMirrorRepository) GetActiveClinic(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	clinic, err := r.store.ClinicByID(ctx, id)
	if err != nil {
		if errors.Is(err, mirror.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeClinicNotFound)
		}
		return nil, err
	}
	if clinic.Status != "active" {
		return nil, httperr.ErrBusiness(httperr.CodeClinicNotFound)
	}
	return clinic, nil
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

// AssertSlotFree replays the server-side slot check against the blob list.
func (r *AppointmentMirrorRepository) AssertSlotFree(
	ctx context.Context,
	clinicID uint,
	date string,
	timeOfDay string,
) error {

	aps, err := r.store.AppointmentsByClinic(ctx, clinicID)
	if err != nil {
		return err
	}

	for _, ap := range aps {
		if ap.Date == date && ap.Time == timeOfDay && ap.Status != string(domain.StatusCancelled) {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
	}
	return nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentMirrorRepository) UpsertPatient(
	ctx context.Context,
	clinicID uint,
	name string,
	phone string,
) (*models.Patient, error) {
	return r.store.SaveOrUpdatePatient(ctx, clinicID, name, phone)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentMirrorRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	aps, err := r.store.AppointmentsByClinic(ctx, ap.ClinicID)
	if err != nil {
		return err
	}

	id, err := r.store.NextID(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	ap.ID = id
	ap.CreatedAt = now
	ap.UpdatedAt = now

	aps = append(aps, *ap)
	return r.store.PutAppointments(ctx, ap.ClinicID, aps)
}

func (r *AppointmentMirrorRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	ap, err := r.store.AppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, mirror.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	if p, err := r.findPatientByID(ctx, ap.ClinicID, ap.PatientID); err == nil {
		ap.Patient = *p
	}
	return ap, nil
}

func (r *AppointmentMirrorRepository) findPatientByID(
	ctx context.Context,
	clinicID uint,
	patientID uint,
) (*models.Patient, error) {

	patients, err := r.store.PatientsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == patientID {
			return &patients[i], nil
		}
	}
	return nil, mirror.ErrNotFound
}

func (r *AppointmentMirrorRepository) ListAppointmentsByClinic(
	ctx context.Context,
	clinicID uint,
) ([]models.Appointment, error) {

	aps, err := r.store.AppointmentsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	for i := range aps {
		if p, err := r.findPatientByID(ctx, clinicID, aps[i].PatientID); err == nil {
			aps[i].Patient = *p
		}
	}

	// Newest first, matching the server-side ORDER BY date DESC, time DESC.
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].Date != aps[j].Date {
			return aps[i].Date > aps[j].Date
		}
		return aps[i].Time > aps[j].Time
	})
	return aps, nil
}

func (r *AppointmentMirrorRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	aps, err := r.store.AppointmentsByClinic(ctx, ap.ClinicID)
	if err != nil {
		return err
	}

	for i := range aps {
		if aps[i].ID == ap.ID {
			ap.UpdatedAt = time.Now()
			aps[i] = *ap
			return r.store.PutAppointments(ctx, ap.ClinicID, aps)
		}
	}
	return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
}

func (r *AppointmentMirrorRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	ap, err := r.store.AppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, mirror.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return err
	}

	aps, err := r.store.AppointmentsByClinic(ctx, ap.ClinicID)
	if err != nil {
		return err
	}

	kept := aps[:0]
	for _, a := range aps {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return r.store.PutAppointments(ctx, ap.ClinicID, kept)
}

// Compile-time check
var _ domain.Repository = (*AppointmentMirrorRepository)(nil)

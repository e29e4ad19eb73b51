package appointment

import (
	"context"

	"github.com/clinicbook/clinic-scheduler/internal/models"
)

// Repository is the storage contract of the booking engine. Two
// implementations exist: the transactional GORM repository behind the HTTP
// API and the mirror repository over the namespaced key/value store.
type Repository interface {
	// -------- Transaction boundary --------

	// InTx runs fn against a repository bound to a single atomic unit.
	// The mirror backend has no transactions and runs fn directly; that is
	// acceptable only because mirror mode is single-user by design.
	InTx(ctx context.Context, fn func(Repository) error) error

	// -------- Clinic --------

	// GetActiveClinic returns httperr.ErrBusiness(clinic_not_found) when no
	// active clinic matches id.
	GetActiveClinic(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	// -------- Slot --------

	// AssertSlotFree returns httperr.ErrBusiness(slot_taken) when a
	// non-cancelled appointment already occupies (clinicID, date, time).
	AssertSlotFree(
		ctx context.Context,
		clinicID uint,
		date string,
		timeOfDay string,
	) error

	// -------- Patient --------

	// UpsertPatient finds the patient by (clinicID, phone) or creates one.
	// On repeat bookings the stored name is refreshed from the request.
	UpsertPatient(
		ctx context.Context,
		clinicID uint,
		name string,
		phone string,
	) (*models.Patient, error)

	// -------- Appointment --------

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// GetAppointment returns the appointment with its patient loaded, or
	// httperr.ErrBusiness(appointment_not_found).
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsByClinic(
		ctx context.Context,
		clinicID uint,
	) ([]models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}

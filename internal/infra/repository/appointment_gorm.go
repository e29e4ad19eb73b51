package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

func (r *AppointmentGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})

	// The partial unique index on (clinic_id, date, time) is the backstop
	// when two bookings race past the FOR UPDATE check on different rows.
	if isUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveClinic(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, "active").
		First(&clinic).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeClinicNotFound)
		}
		return nil, err
	}
	return &clinic, nil
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *AppointmentGormRepository) AssertSlotFree(
	ctx context.Context,
	clinicID uint,
	date string,
	timeOfDay string,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"clinic_id = ? AND date = ? AND time = ? AND status <> 'cancelled'",
			clinicID, date, timeOfDay,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) UpsertPatient(
	ctx context.Context,
	clinicID uint,
	name string,
	phone string,
) (*models.Patient, error) {

	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND phone = ?", clinicID, phone).
		First(&patient).Error

	if err == nil {
		if patient.Name != name {
			patient.Name = name
			if err := r.db.WithContext(ctx).Save(&patient).Error; err != nil {
				return nil, err
			}
		}
		return &patient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	patient = models.Patient{
		ClinicID: clinicID,
		Name:     name,
		Phone:    phone,
	}
	if err := r.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Clinic").
		First(&ap, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByClinic(
	ctx context.Context,
	clinicID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("clinic_id = ?", clinicID).
		Order("date DESC, time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

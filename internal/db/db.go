package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clinicbook/clinic-scheduler/internal/config"
	"github.com/clinicbook/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Patient{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Backstop for the slot invariant: at most one non-cancelled appointment
	// per (clinic, date, time), enforced even against concurrent writers.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_clinic_slot
        ON appointments (clinic_id, date, time)
        WHERE status <> 'cancelled'
    `)

	return db
}

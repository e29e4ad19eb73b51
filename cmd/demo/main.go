package main

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/clinicbook/clinic-scheduler/internal/audit"
	"github.com/clinicbook/clinic-scheduler/internal/config"
	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	infraRepo "github.com/clinicbook/clinic-scheduler/internal/infra/repository"
	"github.com/clinicbook/clinic-scheduler/internal/kv"
	"github.com/clinicbook/clinic-scheduler/internal/logging"
	"github.com/clinicbook/clinic-scheduler/internal/mirror"
	"github.com/clinicbook/clinic-scheduler/internal/timezone"
	"github.com/clinicbook/clinic-scheduler/internal/usecase/booking"
)

// Demo mode: the whole booking flow against the Local Mirror Store, no
// database and no server. With REDIS_ADDR set the data survives restarts;
// without it everything lives in memory for the run.
func main() {

	cfg := config.Load()
	logging.Init("clinic-demo", "development")

	var backend kv.Store
	if cfg.RedisAddr != "" {
		r, err := kv.NewRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		backend = r
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis backend")
	} else {
		backend = kv.NewMemory()
		log.Info().Msg("using in-memory backend")
	}

	ctx := context.Background()
	store := mirror.NewStore(backend)
	repo := infraRepo.NewAppointmentMirrorRepository(store)

	// Audit events have nowhere to go without a database.
	dispatcher := audit.NewDispatcher(audit.New(nil))
	createUC := booking.NewCreate(repo, dispatcher)
	statusUC := booking.NewSetStatus(repo, dispatcher)

	// ------------------------------
	// Register a clinic
	// ------------------------------
	clinic, owner, err := store.SaveClinic(ctx, mirror.RegisterClinicInput{
		Name:         "El Shefa Clinic",
		OwnerName:    "Dr. Mona Hassan",
		Phone:        "01012345678",
		Email:        "mona@elshefa.example",
		Address:      "12 Tahrir St, Cairo",
		Specialty:    "Dermatology",
		WorkingHours: "Sat-Thu 10:00-18:00",
		Password:     "secret123",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("register clinic")
	}
	log.Info().Uint("clinic", clinic.ID).Str("owner", owner.Name).Msg("clinic registered")

	// ------------------------------
	// Log in (session pointer set)
	// ------------------------------
	session, err := store.Authenticate(ctx, "mona@elshefa.example", "secret123")
	if err != nil {
		log.Fatal().Err(err).Msg("login")
	}
	log.Info().Str("clinic", session.ClinicName).Msg("logged in")

	if err := store.SetLanguage(ctx, "ar"); err != nil {
		log.Fatal().Err(err).Msg("set language")
	}

	// ------------------------------
	// Book a slot, then try to double-book it
	// ------------------------------
	date := timezone.Today()

	first, err := createUC.Execute(ctx, booking.CreateInput{
		ClinicID:     clinic.ID,
		PatientName:  "Ahmed Samir",
		PatientPhone: "01087654321",
		Date:         date,
		Time:         "09:00",
		Notes:        "first visit",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("book")
	}
	log.Info().Uint("appointment", first.ID).Msg("slot 09:00 booked")

	_, err = createUC.Execute(ctx, booking.CreateInput{
		ClinicID:     clinic.ID,
		PatientName:  "Laila Fathy",
		PatientPhone: "01055555555",
		Date:         date,
		Time:         "09:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeSlotTaken) {
		log.Fatal().Err(err).Msg("expected slot conflict")
	}
	log.Info().Msg("double booking rejected: time slot already booked")

	// ------------------------------
	// Cancel and rebook the freed slot
	// ------------------------------
	if _, err := statusUC.Execute(ctx, clinic.ID, session.UserID, first.ID, domain.StatusCancelled); err != nil {
		log.Fatal().Err(err).Msg("cancel")
	}
	log.Info().Msg("appointment cancelled")

	second, err := createUC.Execute(ctx, booking.CreateInput{
		ClinicID:     clinic.ID,
		PatientName:  "Laila Fathy",
		PatientPhone: "01055555555",
		Date:         date,
		Time:         "09:00",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("rebook")
	}
	log.Info().Uint("appointment", second.ID).Msg("freed slot rebooked")

	// ------------------------------
	// Stats and export
	// ------------------------------
	stats, err := store.ClinicStats(ctx, clinic.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("stats")
	}
	log.Info().
		Int("total", stats.TotalAppointments).
		Int("today", stats.TodayAppointments).
		Int("pending", stats.PendingAppointments).
		Int("cancelled", stats.CancelledAppointments).
		Msg("clinic stats")

	export, err := store.ExportClinicData(ctx, clinic.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("export")
	}
	blob, _ := json.MarshalIndent(export, "", "  ")
	log.Info().Int("bytes", len(blob)).Msg("clinic data exported")

	if err := store.Logout(ctx); err != nil {
		log.Fatal().Err(err).Msg("logout")
	}
	log.Info().Msg("session cleared, demo complete")
}

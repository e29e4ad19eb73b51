package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbook/clinic-scheduler/internal/audit"
	"github.com/clinicbook/clinic-scheduler/internal/config"
	"github.com/clinicbook/clinic-scheduler/internal/handlers"
	infraRepo "github.com/clinicbook/clinic-scheduler/internal/infra/repository"
	"github.com/clinicbook/clinic-scheduler/internal/middleware"
	"github.com/clinicbook/clinic-scheduler/internal/token"
	ucBooking "github.com/clinicbook/clinic-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	tokens := token.NewManager(cfg)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	authLimiter := middleware.NewRateLimiter(1, 5)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	createUC := ucBooking.NewCreate(appointmentRepo, auditDispatcher)
	setStatusUC := ucBooking.NewSetStatus(appointmentRepo, auditDispatcher)
	getUC := ucBooking.NewGet(appointmentRepo)
	listUC := ucBooking.NewListByClinic(appointmentRepo)
	deleteUC := ucBooking.NewDelete(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, auditDispatcher)
	clinicHandler := handlers.NewClinicHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		setStatusUC,
		getUC,
		listUC,
		deleteUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		// ------------------------------
		// PUBLIC CLINIC DIRECTORY
		// ------------------------------
		api.GET("/clinics", clinicHandler.List)
		api.GET("/clinics/:id", clinicHandler.GetByID)

		// ------------------------------
		// PUBLIC PATIENT BOOKING
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)

		// ------------------------------
		// PRIVATE (BEARER)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/auth/me", authHandler.Me)

			secured.PUT("/clinics/:id", clinicHandler.Update)

			secured.GET("/appointments/clinic/:clinicId", appointmentHandler.ListByClinic)
			secured.GET("/appointments/:id", appointmentHandler.GetByID)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/patients", patientHandler.List)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

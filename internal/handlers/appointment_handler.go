package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/dto"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/httpresp"
	"github.com/clinicbook/clinic-scheduler/internal/middleware"
	"github.com/clinicbook/clinic-scheduler/internal/usecase/booking"
	"github.com/clinicbook/clinic-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create    *booking.Create
	setStatus *booking.SetStatus
	get       *booking.Get
	list      *booking.ListByClinic
	delete    *booking.Delete
}

func NewAppointmentHandler(
	create *booking.Create,
	setStatus *booking.SetStatus,
	get *booking.Get,
	list *booking.ListByClinic,
	del *booking.Delete,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:    create,
		setStatus: setStatus,
		get:       get,
		list:      list,
		delete:    del,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClinicID     uint   `json:"clinicId" binding:"required"`
	PatientName  string `json:"patientName" binding:"required"`
	PatientPhone string `json:"patientPhone" binding:"required"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:MM
	Notes        string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE (PUBLIC — PATIENT BOOKING)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid booking data: "+err.Error())
		return
	}

	if !validators.IsEgyptianMobile(req.PatientPhone) {
		httperr.BadRequest(c, "Invalid Egyptian phone number")
		return
	}
	if !validators.IsISODate(req.Date) {
		httperr.BadRequest(c, "Valid date is required")
		return
	}
	if !validators.IsTimeOfDay(req.Time) {
		httperr.BadRequest(c, "Valid time is required (HH:MM)")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), booking.CreateInput{
		ClinicID:     req.ClinicID,
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeClinicNotFound):
			httperr.NotFound(c, "Clinic not found")
		case httperr.IsBusiness(err, httperr.CodeSlotTaken):
			httperr.BadRequest(c, "Time slot already booked")
		default:
			log.Error().Err(err).Msg("booking failed")
			httperr.Internal(c, "Server error")
		}
		return
	}

	res := dto.FromAppointment(ap)
	res.ClinicName = ""
	httpresp.Created(c, "Appointment booked successfully", res)
}

// ======================================================
// LIST BY CLINIC
// ======================================================

func (h *AppointmentHandler) ListByClinic(c *gin.Context) {
	callerClinicID := c.MustGet(middleware.ContextClinicID).(uint)

	clinicID, err := strconv.ParseUint(c.Param("clinicId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid clinic id")
		return
	}

	aps, err := h.list.Execute(c.Request.Context(), callerClinicID, uint(clinicID))
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotAuthorized) {
			httperr.Forbidden(c, "Not authorized")
			return
		}
		log.Error().Err(err).Msg("list appointments failed")
		httperr.Internal(c, "Server error")
		return
	}

	httpresp.OK(c, dto.FromAppointments(aps))
}

// ======================================================
// GET BY ID
// ======================================================

func (h *AppointmentHandler) GetByID(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id")
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), clinicID, uint(id))
	if err != nil {
		h.writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Status is required")
		return
	}

	ap, err := h.setStatus.Execute(
		c.Request.Context(),
		clinicID,
		userID,
		uint(id),
		domain.Status(req.Status),
	)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeInvalidStatus) {
			httperr.BadRequest(c, "Invalid status")
			return
		}
		h.writeAppointmentError(c, err)
		return
	}

	httpresp.OKMessage(c, "Appointment status updated", gin.H{
		"id":         ap.ID,
		"status":     ap.Status,
		"updated_at": ap.UpdatedAt,
	})
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), clinicID, userID, uint(id)); err != nil {
		h.writeAppointmentError(c, err)
		return
	}

	httpresp.OKMessage(c, "Appointment deleted successfully", nil)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func (h *AppointmentHandler) writeAppointmentError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeAppointmentNotFound):
		httperr.NotFound(c, "Appointment not found")
	case httperr.IsBusiness(err, httperr.CodeNotAuthorized):
		httperr.Forbidden(c, "Not authorized")
	default:
		log.Error().Err(err).Msg("appointment operation failed")
		httperr.Internal(c, "Server error")
	}
}

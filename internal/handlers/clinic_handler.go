package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/httpresp"
	"github.com/clinicbook/clinic-scheduler/internal/middleware"
	"github.com/clinicbook/clinic-scheduler/internal/models"
	"github.com/clinicbook/clinic-scheduler/internal/validators"
)

type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

type UpdateClinicRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Specialty    *string `json:"specialty"`
	WorkingHours *string `json:"workingHours"`
}

// ======================================================
// PUBLIC DIRECTORY
// ======================================================

func (h *ClinicHandler) List(c *gin.Context) {
	var clinics []models.Clinic
	if err := h.db.
		Where("status = ?", "active").
		Order("created_at DESC").
		Find(&clinics).Error; err != nil {

		httperr.Internal(c, "Server error")
		return
	}

	httpresp.OK(c, clinics)
}

func (h *ClinicHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var clinic models.Clinic
	if err := h.db.
		Where("id = ? AND status = ?", id, "active").
		First(&clinic).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Clinic not found")
			return
		}
		httperr.Internal(c, "Server error")
		return
	}

	httpresp.OK(c, clinic)
}

// ======================================================
// UPDATE (OWNER ONLY)
// ======================================================

func (h *ClinicHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid clinic id")
		return
	}

	var clinic models.Clinic
	if err := h.db.
		Where("id = ? AND status = ?", id, "active").
		First(&clinic).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Clinic not found")
			return
		}
		httperr.Internal(c, "Server error")
		return
	}

	// Not-found first, then ownership.
	if clinicID != uint(id) {
		httperr.Forbidden(c, "Not authorized to update this clinic")
		return
	}

	var req UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid clinic data")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			httperr.BadRequest(c, "Clinic name cannot be empty")
			return
		}
		clinic.Name = *req.Name
	}
	if req.Phone != nil {
		if !validators.IsEgyptianMobile(*req.Phone) {
			httperr.BadRequest(c, "Invalid Egyptian phone number")
			return
		}
		clinic.Phone = *req.Phone
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Specialty != nil {
		clinic.Specialty = *req.Specialty
	}
	if req.WorkingHours != nil {
		clinic.WorkingHours = *req.WorkingHours
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "Server error")
		return
	}

	httpresp.OKMessage(c, "Clinic updated successfully", clinic)
}

package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clinicbook/clinic-scheduler/internal/audit"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/httpresp"
	"github.com/clinicbook/clinic-scheduler/internal/middleware"
	"github.com/clinicbook/clinic-scheduler/internal/models"
	"github.com/clinicbook/clinic-scheduler/internal/token"
	"github.com/clinicbook/clinic-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *token.Manager
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, tokens *token.Manager, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	OwnerName    string `json:"ownerName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Address      string `json:"address" binding:"required"`
	Specialty    string `json:"specialty" binding:"required"`
	WorkingHours string `json:"workingHours" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// --------- Handlers ---------

// Register creates the clinic and its owner user in one transaction; a
// duplicate email aborts before anything is written.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid registration data: "+err.Error())
		return
	}

	if !validators.IsEgyptianMobile(req.Phone) {
		httperr.BadRequest(c, "Invalid Egyptian phone number")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Server error during registration")
		return
	}

	var clinic models.Clinic
	var user models.User

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeEmailTaken)
		}

		clinic = models.Clinic{
			Name:         req.Name,
			Phone:        req.Phone,
			Email:        email,
			Address:      req.Address,
			Specialty:    req.Specialty,
			WorkingHours: req.WorkingHours,
			Status:       "active",
		}
		if err := tx.Create(&clinic).Error; err != nil {
			return err
		}

		user = models.User{
			ClinicID:     clinic.ID,
			Name:         req.OwnerName,
			Email:        email,
			PasswordHash: string(hashed),
			Role:         "owner",
			Status:       "active",
		}
		return tx.Create(&user).Error
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeEmailTaken) {
			httperr.BadRequest(c, "Email already registered")
			return
		}
		log.Error().Err(err).Msg("registration failed")
		httperr.Internal(c, "Server error during registration")
		return
	}

	access, refresh, err := h.tokens.Pair(user.ID, clinic.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "Server error during registration")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinic.ID,
		UserID:   &user.ID,
		Action:   "clinic_registered",
		Entity:   "clinic",
		EntityID: &clinic.ID,
	})

	httpresp.Created(c, "Clinic registered successfully", gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"clinic": gin.H{
			"id":           clinic.ID,
			"name":         clinic.Name,
			"phone":        clinic.Phone,
			"email":        clinic.Email,
			"address":      clinic.Address,
			"specialty":    clinic.Specialty,
			"workingHours": clinic.WorkingHours,
		},
		"tokens": gin.H{
			"accessToken":  access,
			"refreshToken": refresh,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid login data")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// One message for unknown email and wrong password alike.
	var user models.User
	if err := h.db.Preload("Clinic").
		Joins("JOIN clinics ON clinics.id = users.clinic_id AND clinics.status = 'active'").
		Where("users.email = ? AND users.status = 'active'", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "Invalid credentials")
			return
		}
		log.Error().Err(err).Msg("login query failed")
		httperr.Internal(c, "Server error during login")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "Invalid credentials")
		return
	}

	access, refresh, err := h.tokens.Pair(user.ID, user.ClinicID, user.Role)
	if err != nil {
		httperr.Internal(c, "Server error during login")
		return
	}

	httpresp.OKMessage(c, "Login successful", gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"clinicId":   user.ClinicID,
			"clinicName": user.Clinic.Name,
		},
		"tokens": gin.H{
			"accessToken":  access,
			"refreshToken": refresh,
		},
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Refresh token required")
		return
	}

	claims, err := h.tokens.ParseRefresh(req.RefreshToken)
	if err != nil {
		httperr.Unauthorized(c, "Invalid refresh token")
		return
	}

	access, err := h.tokens.Access(claims.UserID, claims.ClinicID, claims.Role)
	if err != nil {
		httperr.Internal(c, "Server error")
		return
	}

	httpresp.OK(c, gin.H{"accessToken": access})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Clinic").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "User not found")
			return
		}
		httperr.Internal(c, "Server error")
		return
	}

	httpresp.OK(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"clinic": gin.H{
			"id":           user.Clinic.ID,
			"name":         user.Clinic.Name,
			"phone":        user.Clinic.Phone,
			"email":        user.Clinic.Email,
			"specialty":    user.Clinic.Specialty,
			"workingHours": user.Clinic.WorkingHours,
		},
	})
}

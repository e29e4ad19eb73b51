package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint   `gorm:"index:idx_clinic_slot,unique,where:status <> 'cancelled'" json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	// Stored as the caller's literal strings (YYYY-MM-DD / HH:MM); the pair
	// together with ClinicID forms the bookable slot.
	Date string `gorm:"size:10;index:idx_clinic_slot,unique,where:status <> 'cancelled'" json:"date"`
	Time string `gorm:"size:5;index:idx_clinic_slot,unique,where:status <> 'cancelled'" json:"time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Patients never log in; within a clinic the phone number is the identity.
type Patient struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `gorm:"index:idx_patient_phone,unique" json:"clinic_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;not null;index:idx_patient_phone,unique" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type Clinic struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Phone     string `gorm:"size:20" json:"phone"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Address   string `gorm:"size:255" json:"address"`
	Specialty string `gorm:"size:100" json:"specialty"`

	// Free-text display string, e.g. "Sat-Thu 10:00-18:00".
	WorkingHours string `gorm:"size:255" json:"workingHours"`

	Status string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

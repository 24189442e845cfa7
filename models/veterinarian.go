package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Veterinarian is roster data owned by profile storage; the core only
// references it from appointments.
type Veterinarian struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`

	Name      string `gorm:"not null" json:"name"`
	Specialty string `json:"specialty"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	Appointments []Appointment `gorm:"foreignKey:VeterinarianID" json:"-"`

	gorm.Model `json:"-"`
}

func (v *Veterinarian) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

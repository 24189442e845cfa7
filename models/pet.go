package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	Name    string `gorm:"not null" json:"name"`
	Species string `gorm:"not null" json:"species"`
	Breed   string `json:"breed"`

	// Last recorded weight, overwritten at each triage. There is no weight
	// history table; the per-visit value lives on the appointment.
	CurrentWeightKg *float64   `gorm:"type:decimal(6,2)" json:"currentWeightKg,omitempty"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`

	Appointments []Appointment `gorm:"foreignKey:PetID" json:"-"`

	gorm.Model `json:"-"`
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

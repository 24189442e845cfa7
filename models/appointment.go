package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "pending"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no_show"
)

// allowedTransitions is the closed edge set of the appointment lifecycle.
// Anything not listed here is rejected, regardless of who asks.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:    {AppointmentConfirmed, AppointmentInProgress, AppointmentCancelled, AppointmentNoShow},
	AppointmentConfirmed:  {AppointmentInProgress, AppointmentCancelled, AppointmentNoShow},
	AppointmentInProgress: {AppointmentCompleted},
}

// AllowedTransition reports whether the lifecycle permits moving from one
// status to another.
func AllowedTransition(from, to AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SweepableStatuses are the statuses the no-show sweeper may act on.
func SweepableStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentPending, AppointmentConfirmed}
}

type Appointment struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PetID          uuid.UUID `gorm:"type:uuid;index;not null" json:"petId"`
	VeterinarianID uuid.UUID `gorm:"type:uuid;index;not null" json:"veterinarianId"`

	ScheduledStart time.Time         `gorm:"index;not null" json:"scheduledStart"`
	ScheduledEnd   time.Time         `gorm:"not null" json:"scheduledEnd"`
	Status         AppointmentStatus `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	Reason         string            `json:"reason"`
	IsEmergency    bool              `gorm:"default:false" json:"isEmergency"`

	CheckedInAt        *time.Time `json:"checkedInAt"`
	CheckedOutAt       *time.Time `json:"checkedOutAt"`
	CancellationReason string     `json:"cancellationReason,omitempty"`

	// Intake vitals captured at triage. Weight is copied onto the pet record
	// as well; the appointment keeps the value measured at this visit.
	WeightKg     *float64 `gorm:"type:decimal(6,2)" json:"weightKg,omitempty"`
	TemperatureC *float64 `gorm:"type:decimal(4,1)" json:"temperatureC,omitempty"`
	HeartRateBPM *int     `json:"heartRateBpm,omitempty"`
	TriageNotes  string   `gorm:"type:text" json:"triageNotes,omitempty"`

	Pet          Pet          `gorm:"foreignKey:PetID" json:"-"`
	Veterinarian Veterinarian `gorm:"foreignKey:VeterinarianID" json:"-"`

	gorm.Model `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

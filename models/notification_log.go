package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// NotificationLog records every outbound notification attempt. Delivery is the
// dispatcher's problem; the log row is the contract the core owns.
type NotificationLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipientID uuid.UUID `gorm:"type:uuid;index;not null" json:"recipientId"`

	NotificationType string         `gorm:"type:varchar(40);not null" json:"notificationType"`
	Content          string         `gorm:"type:text" json:"content"`
	DeliveryStatus   DeliveryStatus `gorm:"type:varchar(20);default:'pending'" json:"deliveryStatus"`
	ErrorMessage     string         `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel          string         `gorm:"type:varchar(20)" json:"channel,omitempty"`
	SentAt           *time.Time     `json:"sentAt,omitempty"`

	gorm.Model `json:"-"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}

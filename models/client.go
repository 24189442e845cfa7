package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a registered pet owner. The core reads client rows for receipt
// aggregation and roster counts but only ever mutates them through billing
// side effects.
type Client struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`

	Name     string `gorm:"not null" json:"name"`
	Phone    string `gorm:"not null;index" json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	Pets     []Pet     `gorm:"foreignKey:ClientID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"-"`

	gorm.Model `json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentOpen    PaymentStatus = "open"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentStatusFor derives the payment status from amounts. The status column
// is never written independently of this law.
func PaymentStatusFor(amountPaid, totalAmount float64) PaymentStatus {
	switch {
	case amountPaid <= 0:
		return PaymentOpen
	case amountPaid < totalAmount:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}

type LineItemType string

const (
	LineItemService LineItemType = "service"
	LineItemProduct LineItemType = "product"
)

type Invoice struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index" json:"createdByUserId"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	InvoiceDate   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"invoiceDate"`

	// Exactly one of ClientID / WalkInCustomerName is set.
	ClientID           *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`
	WalkInCustomerName string     `json:"walkInCustomerName,omitempty"`

	Subtotal       float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxAmount      float64 `gorm:"type:decimal(10,2);default:0.0" json:"taxAmount"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);default:0.0" json:"discountAmount"`
	TotalAmount    float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	AmountPaid    float64       `gorm:"type:decimal(10,2);default:0.0" json:"amountPaid"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'open'" json:"paymentStatus"`
	Notes         string        `json:"notes,omitempty"`

	Items    []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"items"`
	Payments []Payment         `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`

	gorm.Model `json:"-"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type InvoiceLineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`

	ItemType    LineItemType `gorm:"type:varchar(10);not null" json:"itemType"`
	ServiceID   *uuid.UUID   `gorm:"type:uuid;index" json:"serviceId,omitempty"`
	ProductID   *uuid.UUID   `gorm:"type:uuid;index" json:"productId,omitempty"`
	Description string       `gorm:"not null" json:"description"`
	Quantity    int          `gorm:"not null" json:"quantity"`
	UnitPrice   float64      `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	LineTotal   float64      `gorm:"type:decimal(10,2);not null" json:"lineTotal"`
}

func (li *InvoiceLineItem) BeforeCreate(tx *gorm.DB) (err error) {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return
}

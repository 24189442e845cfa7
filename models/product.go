package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a stocked retail or dispensary item. StockQuantity is mutated
// only through the inventory ledger's conditional updates, never by a plain
// read-then-write.
type Product struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name          string  `gorm:"not null" json:"name"`
	SKU           string  `gorm:"uniqueIndex" json:"sku"`
	Description   string  `json:"description"`
	Price         float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int     `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stockQuantity"`
	IsActive      bool    `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vetdesk-backend/models"
	"vetdesk-backend/services"
)

type InvoiceRepository struct {
	db *gorm.DB
}

var _ services.InvoiceStore = (*InvoiceRepository)(nil)

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// CreateWithStock persists the invoice header, its line items and every
// product decrement inside one transaction. A decrement whose guard rejects
// it rolls back the whole write, so no invoice exists without its stock
// having been taken.
func (r *InvoiceRepository) CreateWithStock(ctx context.Context, inv *models.Invoice, stock []services.StockLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range stock {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
				Updates(map[string]interface{}{
					"stock_quantity": gorm.Expr("stock_quantity - ?", line.Quantity),
					"updated_at":     time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&models.Product{}).Where("id = ?", line.ProductID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return fmt.Errorf("%w: product %s", services.ErrNotFound, line.ProductID)
				}
				return fmt.Errorf("%w: product %s", services.ErrInsufficientStock, line.ProductID)
			}
		}

		return tx.Create(inv).Error
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payments").
		First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	var invs []models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("invoice_date desc").
		Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

// ApplyPayment locks the invoice row, records the payment and recomputes the
// derived status from the post-increment amount, all in one transaction.
func (r *InvoiceRepository) ApplyPayment(ctx context.Context, invoiceID uuid.UUID, payment *models.Payment) (*models.Invoice, error) {
	var updated models.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&inv, "id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %s", services.ErrNotFound, invoiceID)
			}
			return err
		}

		payment.InvoiceID = inv.ID
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		newPaid := inv.AmountPaid + payment.Amount
		if err := tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).
			Updates(map[string]interface{}{
				"amount_paid":    newPaid,
				"payment_status": models.PaymentStatusFor(newPaid, inv.TotalAmount),
			}).Error; err != nil {
			return err
		}

		return tx.Preload("Items").Preload("Payments").First(&updated, "id = ?", inv.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *InvoiceRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Invoice, error) {
	var invs []models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payments").
		Where("client_id = ?", clientID).
		Order("invoice_date desc").
		Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

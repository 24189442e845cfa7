package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"vetdesk-backend/models"
)

// InventoryService owns product stock counts. All mutations go through
// conditional updates so stock can never go negative, even under concurrent
// invoice builds against the same product.
type InventoryService struct {
	products ProductStore
}

func NewInventoryService(products ProductStore) *InventoryService {
	return &InventoryService{products: products}
}

// Decrement reduces a product's stock by qty, failing with
// ErrInsufficientStock when less than qty is on hand. The guard and the
// write are one statement; there is no read-then-write window.
func (s *InventoryService) Decrement(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	rows, err := s.products.DecrementStock(ctx, productID, qty)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if rows > 0 {
		return nil
	}

	// Zero rows means either the product is missing or the guard rejected
	// the decrement; only a follow-up read can tell which.
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
}

// Adjustment is one requested stock delta; positive restocks, negative
// removes (shrinkage, damage, corrections).
type Adjustment struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Delta     int       `json:"delta" binding:"required"`
}

// AdjustmentResult is the per-item outcome of a batch adjustment.
type AdjustmentResult struct {
	ProductID uuid.UUID `json:"productId"`
	Delta     int       `json:"delta"`
	Applied   bool      `json:"applied"`
	Error     string    `json:"error,omitempty"`
}

// AdjustBatch applies each adjustment independently and reports a per-item
// outcome list. One failing item never aborts the rest; the caller decides
// whether partial success is acceptable.
func (s *InventoryService) AdjustBatch(ctx context.Context, adjustments []Adjustment) []AdjustmentResult {
	results := make([]AdjustmentResult, 0, len(adjustments))
	for _, adj := range adjustments {
		res := AdjustmentResult{ProductID: adj.ProductID, Delta: adj.Delta}

		var err error
		switch {
		case adj.Delta == 0:
			err = fmt.Errorf("%w: delta must not be zero", ErrValidation)
		case adj.Delta < 0:
			err = s.Decrement(ctx, adj.ProductID, -adj.Delta)
		default:
			err = s.increment(ctx, adj.ProductID, adj.Delta)
		}

		if err != nil {
			res.Error = err.Error()
		} else {
			res.Applied = true
		}
		results = append(results, res)
	}
	return results
}

func (s *InventoryService) increment(ctx context.Context, productID uuid.UUID, qty int) error {
	rows, err := s.products.IncrementStock(ctx, productID, qty)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	return nil
}

func (s *InventoryService) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return products, nil
}

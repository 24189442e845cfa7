package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"vetdesk-backend/models"
)

func TestDecrement(t *testing.T) {
	t.Run("reduces stock", func(t *testing.T) {
		products := newFakeProductStore()
		svc := NewInventoryService(products)
		id := products.add(models.Product{Name: "Syringes", StockQuantity: 10, IsActive: true})

		if err := svc.Decrement(context.Background(), id, 4); err != nil {
			t.Fatalf("decrement: %v", err)
		}
		if got := products.stock(id); got != 6 {
			t.Fatalf("expected stock 6, got %d", got)
		}
	})

	t.Run("insufficient stock leaves count unchanged", func(t *testing.T) {
		products := newFakeProductStore()
		svc := NewInventoryService(products)
		id := products.add(models.Product{Name: "Syringes", StockQuantity: 3, IsActive: true})

		err := svc.Decrement(context.Background(), id, 5)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if got := products.stock(id); got != 3 {
			t.Fatalf("expected stock unchanged at 3, got %d", got)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := NewInventoryService(newFakeProductStore())
		if err := svc.Decrement(context.Background(), uuid.New(), 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		products := newFakeProductStore()
		svc := NewInventoryService(products)
		id := products.add(models.Product{Name: "Syringes", StockQuantity: 3, IsActive: true})

		for _, qty := range []int{0, -2} {
			if err := svc.Decrement(context.Background(), id, qty); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation for qty %d, got %v", qty, err)
			}
		}
	})
}

// Two concurrent decrements of 5 against a stock of 8: exactly one wins.
func TestDecrementConcurrent(t *testing.T) {
	products := newFakeProductStore()
	svc := NewInventoryService(products)
	id := products.add(models.Product{Name: "Dewormer", StockQuantity: 8, IsActive: true})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Decrement(context.Background(), id, 5)
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || insufficient != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d stock failures", succeeded, insufficient)
	}
	if got := products.stock(id); got != 3 {
		t.Fatalf("expected final stock 3, got %d", got)
	}
}

func TestAdjustBatch(t *testing.T) {
	products := newFakeProductStore()
	svc := NewInventoryService(products)
	restockID := products.add(models.Product{Name: "Bandages", StockQuantity: 2, IsActive: true})
	shortID := products.add(models.Product{Name: "Antibiotics", StockQuantity: 1, IsActive: true})

	results := svc.AdjustBatch(context.Background(), []Adjustment{
		{ProductID: restockID, Delta: 10},
		{ProductID: shortID, Delta: -5},
		{ProductID: uuid.New(), Delta: 3},
		{ProductID: restockID, Delta: 0},
	})

	if len(results) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(results))
	}
	if !results[0].Applied {
		t.Fatalf("restock should apply: %+v", results[0])
	}
	if results[1].Applied || results[1].Error == "" {
		t.Fatalf("short stock removal should fail with detail: %+v", results[1])
	}
	if results[2].Applied {
		t.Fatalf("unknown product should fail: %+v", results[2])
	}
	if results[3].Applied {
		t.Fatalf("zero delta should fail: %+v", results[3])
	}

	if got := products.stock(restockID); got != 12 {
		t.Fatalf("expected stock 12, got %d", got)
	}
	if got := products.stock(shortID); got != 1 {
		t.Fatalf("expected stock unchanged at 1, got %d", got)
	}
}

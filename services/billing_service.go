package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"vetdesk-backend/models"
	"vetdesk-backend/utils"
)

// amountTolerance absorbs float rounding when validating caller-supplied
// totals against recomputed ones.
const amountTolerance = 0.01

// BillingService assembles invoices from carts and reconciles payments
// against them.
type BillingService struct {
	invoices InvoiceStore
	clients  ClientStore
}

func NewBillingService(invoices InvoiceStore, clients ClientStore) *BillingService {
	return &BillingService{invoices: invoices, clients: clients}
}

// CartLine is one requested line item.
type CartLine struct {
	ItemType    models.LineItemType `json:"itemType" binding:"required,oneof=service product"`
	ServiceID   *uuid.UUID          `json:"serviceId"`
	ProductID   *uuid.UUID          `json:"productId"`
	Description string              `json:"description"`
	Quantity    int                 `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64             `json:"unitPrice" binding:"min=0"`
}

type CreateInvoiceInput struct {
	ClientID           *uuid.UUID `json:"clientId"`
	WalkInCustomerName string     `json:"walkInCustomerName"`

	Cart           []CartLine `json:"cart" binding:"required,min=1"`
	Subtotal       float64    `json:"subtotal" binding:"min=0"`
	TaxAmount      float64    `json:"taxAmount" binding:"min=0"`
	DiscountAmount float64    `json:"discountAmount" binding:"min=0"`
	TotalAmount    float64    `json:"totalAmount" binding:"min=0"`

	// PayNow marks the invoice fully paid at creation (point-of-sale flow).
	PayNow bool   `json:"payNow"`
	Notes  string `json:"notes"`

	CreatedByUserID uuid.UUID `json:"-"`
}

// CreateInvoice validates the cart and totals, then persists the invoice,
// its line items and all product stock decrements as one transaction. A
// failed decrement aborts the whole write.
func (s *BillingService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	hasClient := input.ClientID != nil && *input.ClientID != uuid.Nil
	hasWalkIn := input.WalkInCustomerName != ""
	if hasClient == hasWalkIn {
		return nil, fmt.Errorf("%w: exactly one of clientId or walkInCustomerName must be set", ErrValidation)
	}
	if hasClient {
		if _, err := s.clients.GetByID(ctx, *input.ClientID); err != nil {
			return nil, fmt.Errorf("%w: client %s", ErrNotFound, *input.ClientID)
		}
	}

	if input.Subtotal < 0 || input.TaxAmount < 0 || input.DiscountAmount < 0 || input.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	}
	expected := input.Subtotal + input.TaxAmount - input.DiscountAmount
	if math.Abs(expected-input.TotalAmount) > amountTolerance {
		return nil, fmt.Errorf("%w: total %.2f does not match subtotal %.2f + tax %.2f - discount %.2f",
			ErrValidation, input.TotalAmount, input.Subtotal, input.TaxAmount, input.DiscountAmount)
	}

	items, stock, err := buildLineItems(input.Cart)
	if err != nil {
		return nil, err
	}

	amountPaid := 0.0
	status := models.PaymentOpen
	if input.PayNow {
		amountPaid = input.TotalAmount
		status = models.PaymentStatusFor(amountPaid, input.TotalAmount)
	}

	inv := &models.Invoice{
		InvoiceNumber:      "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		InvoiceDate:        time.Now(),
		ClientID:           input.ClientID,
		WalkInCustomerName: input.WalkInCustomerName,
		Subtotal:           input.Subtotal,
		TaxAmount:          input.TaxAmount,
		DiscountAmount:     input.DiscountAmount,
		TotalAmount:        input.TotalAmount,
		AmountPaid:         amountPaid,
		PaymentStatus:      status,
		Notes:              input.Notes,
		CreatedByUserID:    input.CreatedByUserID,
		Items:              items,
	}

	if err := s.invoices.CreateWithStock(ctx, inv, stock); err != nil {
		return nil, err
	}
	return inv, nil
}

// buildLineItems validates every cart entry, recomputes line totals (caller
// input is not trusted) and collects the stock decrements product lines need.
func buildLineItems(cart []CartLine) ([]models.InvoiceLineItem, []StockLine, error) {
	if len(cart) == 0 {
		return nil, nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	items := make([]models.InvoiceLineItem, 0, len(cart))
	var stock []StockLine
	for i, line := range cart {
		if line.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: line %d quantity must be positive", ErrValidation, i)
		}
		if line.UnitPrice < 0 {
			return nil, nil, fmt.Errorf("%w: line %d unit price must not be negative", ErrValidation, i)
		}

		switch line.ItemType {
		case models.LineItemService:
			if line.ServiceID == nil || line.ProductID != nil {
				return nil, nil, fmt.Errorf("%w: line %d of type service must reference exactly a service", ErrValidation, i)
			}
		case models.LineItemProduct:
			if line.ProductID == nil || line.ServiceID != nil {
				return nil, nil, fmt.Errorf("%w: line %d of type product must reference exactly a product", ErrValidation, i)
			}
			stock = append(stock, StockLine{ProductID: *line.ProductID, Quantity: line.Quantity})
		default:
			return nil, nil, fmt.Errorf("%w: line %d has unknown item type %q", ErrValidation, i, line.ItemType)
		}

		items = append(items, models.InvoiceLineItem{
			ItemType:    line.ItemType,
			ServiceID:   line.ServiceID,
			ProductID:   line.ProductID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   float64(line.Quantity) * line.UnitPrice,
		})
	}
	return items, stock, nil
}

// PaymentResult is an applied payment plus the reconciled invoice.
type PaymentResult struct {
	Invoice  *models.Invoice `json:"invoice"`
	Overpaid bool            `json:"overpaid"`
}

// ApplyPayment records a payment and recomputes the invoice's derived
// payment status. Overpayment is accepted and flagged, not rejected.
func (s *BillingService) ApplyPayment(ctx context.Context, invoiceID uuid.UUID, amount float64, method string) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if method == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrValidation)
	}

	payment := &models.Payment{
		Amount:        amount,
		PaymentMethod: method,
		PaymentDate:   time.Now(),
	}
	inv, err := s.invoices.ApplyPayment(ctx, invoiceID, payment)
	if err != nil {
		return nil, err
	}

	overpaid := inv.AmountPaid > inv.TotalAmount+amountTolerance
	if overpaid {
		log.Printf("[billing] invoice %s overpaid: %.2f against total %.2f", inv.InvoiceNumber, inv.AmountPaid, inv.TotalAmount)
	}
	return &PaymentResult{Invoice: inv, Overpaid: overpaid}, nil
}

func (s *BillingService) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: invoice %s", ErrNotFound, id)
	}
	return inv, nil
}

func (s *BillingService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	invs, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return invs, nil
}

// ClientReceipts is the read-side billing history for one client.
type ClientReceipts struct {
	ClientID   uuid.UUID        `json:"clientId"`
	Invoices   []models.Invoice `json:"invoices"`
	TotalSpent float64          `json:"totalSpent"`
}

func (s *BillingService) GetClientReceipts(ctx context.Context, clientID uuid.UUID) (*ClientReceipts, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, fmt.Errorf("%w: client %s", ErrNotFound, clientID)
	}
	invoices, err := s.invoices.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	total := 0.0
	for _, inv := range invoices {
		total += inv.TotalAmount
	}
	return &ClientReceipts{ClientID: clientID, Invoices: invoices, TotalSpent: total}, nil
}

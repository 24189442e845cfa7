package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vetdesk-backend/models"
)

// Store interfaces owned by the service layer. The gorm implementations live
// in the repository package; tests substitute in-memory fakes.

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	Status         models.AppointmentStatus
	VeterinarianID *uuid.UUID
	From           *time.Time
	To             *time.Time
	PetNameSearch  string
}

// StatusUpdate is a compare-and-swap status write. The update applies only
// where the row still has From as its status (and, when RequireNotCheckedIn
// is set, a null checked_in_at); a zero row count means the row moved on.
type StatusUpdate struct {
	From                models.AppointmentStatus
	To                  models.AppointmentStatus
	RequireNotCheckedIn bool
	Fields              map[string]interface{}
}

type AppointmentStore interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (int64, error)
	SweepNoShows(ctx context.Context, cutoff, now time.Time) ([]uuid.UUID, error)
}

type PetStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	UpdateWeight(ctx context.Context, id uuid.UUID, weightKg float64) (int64, error)
}

type ProductStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	// DecrementStock applies "stock_quantity -= qty WHERE stock_quantity >= qty"
	// as one conditional update and reports the affected row count.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int64, error)
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) (int64, error)
}

// StockLine is one product decrement required by an invoice.
type StockLine struct {
	ProductID uuid.UUID
	Quantity  int
}

type InvoiceStore interface {
	// CreateWithStock persists the invoice with its line items and applies all
	// stock decrements in a single transaction. Any failed decrement aborts
	// the whole write with ErrInsufficientStock or ErrNotFound.
	CreateWithStock(ctx context.Context, inv *models.Invoice, stock []StockLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
	// ApplyPayment records the payment and folds it into the invoice's
	// amount_paid and derived payment_status, transactionally.
	ApplyPayment(ctx context.Context, invoiceID uuid.UUID, payment *models.Payment) (*models.Invoice, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Invoice, error)
}

type ClientStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	CountPets(ctx context.Context, clientID uuid.UUID) (int64, error)
	CountAppointments(ctx context.Context, clientID uuid.UUID) (int64, error)
}

type NotificationStore interface {
	Create(ctx context.Context, log *models.NotificationLog) error
	Update(ctx context.Context, log *models.NotificationLog) error
}

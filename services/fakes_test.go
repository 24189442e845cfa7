package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"vetdesk-backend/models"
)

// In-memory store fakes. They mirror the repository contracts, including the
// conditional-update semantics the services rely on.

var errRecordNotFound = errors.New("record not found")

type fakeAppointmentStore struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*models.Appointment

	// beforeUpdate, when set, runs at the start of UpdateStatus. Tests use it
	// to interleave a concurrent writer between the service's read and write.
	beforeUpdate func()
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appts: make(map[uuid.UUID]*models.Appointment)}
}

func (f *fakeAppointmentStore) Create(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentStore) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, appt := range f.appts {
		if filter.Status != "" && appt.Status != filter.Status {
			continue
		}
		if filter.VeterinarianID != nil && appt.VeterinarianID != *filter.VeterinarianID {
			continue
		}
		out = append(out, *appt)
	}
	return out, nil
}

func (f *fakeAppointmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (int64, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok || appt.Status != upd.From {
		return 0, nil
	}
	if upd.RequireNotCheckedIn && appt.CheckedInAt != nil {
		return 0, nil
	}
	applyFields(appt, upd.Fields)
	return 1, nil
}

func applyFields(appt *models.Appointment, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "status":
			appt.Status = value.(models.AppointmentStatus)
		case "checked_in_at":
			t := value.(time.Time)
			appt.CheckedInAt = &t
		case "checked_out_at":
			t := value.(time.Time)
			appt.CheckedOutAt = &t
		case "cancellation_reason":
			appt.CancellationReason = value.(string)
		case "weight_kg":
			v := value.(float64)
			appt.WeightKg = &v
		case "temperature_c":
			v := value.(float64)
			appt.TemperatureC = &v
		case "heart_rate_bpm":
			v := value.(int)
			appt.HeartRateBPM = &v
		case "triage_notes":
			appt.TriageNotes = value.(string)
		case "updated_at":
			appt.UpdatedAt = value.(time.Time)
		}
	}
}

func (f *fakeAppointmentStore) SweepNoShows(ctx context.Context, cutoff, now time.Time) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for _, appt := range f.appts {
		if appt.Status != models.AppointmentPending && appt.Status != models.AppointmentConfirmed {
			continue
		}
		if appt.ScheduledStart.After(cutoff) || appt.CheckedInAt != nil {
			continue
		}
		appt.Status = models.AppointmentNoShow
		appt.UpdatedAt = now
		ids = append(ids, appt.ID)
	}
	return ids, nil
}

type fakePetStore struct {
	mu   sync.Mutex
	pets map[uuid.UUID]*models.Pet
}

func newFakePetStore() *fakePetStore {
	return &fakePetStore{pets: make(map[uuid.UUID]*models.Pet)}
}

func (f *fakePetStore) add(pet models.Pet) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pet.ID == uuid.Nil {
		pet.ID = uuid.New()
	}
	f.pets[pet.ID] = &pet
	return pet.ID
}

func (f *fakePetStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pet, ok := f.pets[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *pet
	return &cp, nil
}

func (f *fakePetStore) UpdateWeight(ctx context.Context, id uuid.UUID, weightKg float64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pet, ok := f.pets[id]
	if !ok {
		return 0, nil
	}
	pet.CurrentWeightKg = &weightKg
	return 1, nil
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[uuid.UUID]*models.Product)}
}

func (f *fakeProductStore) add(product models.Product) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products[product.ID] = &product
	return product.ID
}

func (f *fakeProductStore) stock(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].StockQuantity
}

func (f *fakeProductStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *product
	return &cp, nil
}

func (f *fakeProductStore) ListActive(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok || product.StockQuantity < qty {
		return 0, nil
	}
	product.StockQuantity -= qty
	return 1, nil
}

func (f *fakeProductStore) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return 0, nil
	}
	product.StockQuantity += qty
	return 1, nil
}

type fakeClientStore struct {
	mu       sync.Mutex
	clients  map[uuid.UUID]*models.Client
	petCount map[uuid.UUID]int64
	apptErr  map[uuid.UUID]error
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{
		clients:  make(map[uuid.UUID]*models.Client),
		petCount: make(map[uuid.UUID]int64),
		apptErr:  make(map[uuid.UUID]error),
	}
}

func (f *fakeClientStore) add(client models.Client) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	f.clients[client.ID] = &client
	return client.ID
}

func (f *fakeClientStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	client, ok := f.clients[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *client
	return &cp, nil
}

func (f *fakeClientStore) List(ctx context.Context) ([]models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Client
	for _, c := range f.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClientStore) CountPets(ctx context.Context, clientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.petCount[clientID], nil
}

func (f *fakeClientStore) CountAppointments(ctx context.Context, clientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.apptErr[clientID]; err != nil {
		return 0, err
	}
	return 0, nil
}

// fakeInvoiceStore keeps the all-or-nothing contract of the real repository:
// all decrements are checked before anything is written.
type fakeInvoiceStore struct {
	mu       sync.Mutex
	products *fakeProductStore
	invoices map[uuid.UUID]*models.Invoice
}

func newFakeInvoiceStore(products *fakeProductStore) *fakeInvoiceStore {
	return &fakeInvoiceStore{
		products: products,
		invoices: make(map[uuid.UUID]*models.Invoice),
	}
}

func (f *fakeInvoiceStore) CreateWithStock(ctx context.Context, inv *models.Invoice, stock []StockLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products.mu.Lock()
	defer f.products.mu.Unlock()

	for _, line := range stock {
		product, ok := f.products.products[line.ProductID]
		if !ok {
			return fmt.Errorf("%w: product %s", ErrNotFound, line.ProductID)
		}
		if product.StockQuantity < line.Quantity {
			return fmt.Errorf("%w: product %s", ErrInsufficientStock, line.ProductID)
		}
	}
	for _, line := range stock {
		f.products.products[line.ProductID].StockQuantity -= line.Quantity
	}

	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceStore) List(ctx context.Context) ([]models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invoice
	for _, inv := range f.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

func (f *fakeInvoiceStore) ApplyPayment(ctx context.Context, invoiceID uuid.UUID, payment *models.Payment) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return nil, fmt.Errorf("%w: invoice %s", ErrNotFound, invoiceID)
	}
	payment.InvoiceID = inv.ID
	inv.Payments = append(inv.Payments, *payment)
	inv.AmountPaid += payment.Amount
	inv.PaymentStatus = models.PaymentStatusFor(inv.AmountPaid, inv.TotalAmount)
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceStore) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.ClientID != nil && *inv.ClientID == clientID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeNotifier) Notify(ctx context.Context, recipientID uuid.UUID, notificationType, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notificationType)
}

func (f *fakeNotifier) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

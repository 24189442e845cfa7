package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"vetdesk-backend/models"
)

// AppointmentService owns the appointment lifecycle: booking, the status
// state machine, triage intake and the no-show sweep.
type AppointmentService struct {
	appointments AppointmentStore
	pets         PetStore
	notifier     Notifier
	gracePeriod  time.Duration
}

func NewAppointmentService(appointments AppointmentStore, pets PetStore, notifier Notifier, gracePeriod time.Duration) *AppointmentService {
	if gracePeriod <= 0 {
		gracePeriod = 15 * time.Minute
	}
	return &AppointmentService{
		appointments: appointments,
		pets:         pets,
		notifier:     notifier,
		gracePeriod:  gracePeriod,
	}
}

type BookAppointmentInput struct {
	PetID          uuid.UUID
	VeterinarianID uuid.UUID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Reason         string
	IsEmergency    bool
}

func (s *AppointmentService) Book(ctx context.Context, input BookAppointmentInput) (*models.Appointment, error) {
	if input.PetID == uuid.Nil || input.VeterinarianID == uuid.Nil {
		return nil, fmt.Errorf("%w: pet and veterinarian are required", ErrValidation)
	}
	if !input.ScheduledEnd.After(input.ScheduledStart) {
		return nil, fmt.Errorf("%w: scheduled end must be after start", ErrValidation)
	}
	if _, err := s.pets.GetByID(ctx, input.PetID); err != nil {
		return nil, fmt.Errorf("%w: pet %s", ErrNotFound, input.PetID)
	}

	appt := &models.Appointment{
		PetID:          input.PetID,
		VeterinarianID: input.VeterinarianID,
		ScheduledStart: input.ScheduledStart,
		ScheduledEnd:   input.ScheduledEnd,
		Reason:         input.Reason,
		IsEmergency:    input.IsEmergency,
		Status:         models.AppointmentPending,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return appt, nil
}

func (s *AppointmentService) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	appts, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return appts, nil
}

func (s *AppointmentService) Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, id)
	}
	return appt, nil
}

// TransitionContext carries the status-specific side fields a transition may
// need. Unused fields are ignored for other targets.
type TransitionContext struct {
	CancellationReason string
	ActualEnd          *time.Time
	Vitals             *TriageInput
}

// Transition moves an appointment along one lifecycle edge. The persisted
// write is conditional on the status read here, so a concurrent actor that
// won the row in between surfaces as ErrConflict rather than being clobbered.
func (s *AppointmentService) Transition(ctx context.Context, id uuid.UUID, target models.AppointmentStatus, tc TransitionContext) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, id)
	}

	if !models.AllowedTransition(appt.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}

	now := time.Now()
	upd := StatusUpdate{
		From:   appt.Status,
		To:     target,
		Fields: map[string]interface{}{"status": target, "updated_at": now},
	}

	switch target {
	case models.AppointmentInProgress:
		upd.Fields["checked_in_at"] = now
		if tc.Vitals != nil {
			tc.Vitals.apply(upd.Fields)
		}
	case models.AppointmentCompleted:
		if tc.ActualEnd == nil {
			return nil, fmt.Errorf("%w: completing requires the actual end time", ErrValidation)
		}
		upd.Fields["checked_out_at"] = *tc.ActualEnd
	case models.AppointmentCancelled:
		if tc.CancellationReason == "" {
			return nil, fmt.Errorf("%w: cancellation requires a reason", ErrValidation)
		}
		upd.Fields["cancellation_reason"] = tc.CancellationReason
	case models.AppointmentNoShow:
		// A checked-in visit can never be marked no-show, even if the status
		// read above was stale.
		upd.RequireNotCheckedIn = true
	}

	rows, err := s.appointments.UpdateStatus(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: appointment %s changed concurrently", ErrConflict, id)
	}

	updated, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.notifyTransition(ctx, updated, target, tc)
	return updated, nil
}

// Only client-visible transitions produce a notification.
func (s *AppointmentService) notifyTransition(ctx context.Context, appt *models.Appointment, target models.AppointmentStatus, tc TransitionContext) {
	if s.notifier == nil {
		return
	}
	if target != models.AppointmentConfirmed && target != models.AppointmentCancelled {
		return
	}

	pet, err := s.pets.GetByID(ctx, appt.PetID)
	if err != nil {
		log.Printf("[appointments] cannot resolve owner of pet %s for notification: %v", appt.PetID, err)
		return
	}

	when := appt.ScheduledStart.Format("Jan 2 15:04")
	switch target {
	case models.AppointmentConfirmed:
		s.notifier.Notify(ctx, pet.ClientID, "appointment_confirmed",
			fmt.Sprintf("%s's appointment on %s is confirmed.", pet.Name, when))
	case models.AppointmentCancelled:
		s.notifier.Notify(ctx, pet.ClientID, "appointment_cancelled",
			fmt.Sprintf("%s's appointment on %s was cancelled: %s", pet.Name, when, tc.CancellationReason))
	}
}

// TriageInput is the intake vitals captured when a visit begins.
type TriageInput struct {
	WeightKg     *float64
	TemperatureC *float64
	HeartRateBPM *int
	Notes        string
}

func (t *TriageInput) apply(fields map[string]interface{}) {
	if t.WeightKg != nil {
		fields["weight_kg"] = *t.WeightKg
	}
	if t.TemperatureC != nil {
		fields["temperature_c"] = *t.TemperatureC
	}
	if t.HeartRateBPM != nil {
		fields["heart_rate_bpm"] = *t.HeartRateBPM
	}
	if t.Notes != "" {
		fields["triage_notes"] = t.Notes
	}
}

// RecordTriage stores intake vitals on the appointment, moves it to
// in_progress, and mirrors a supplied weight onto the pet's permanent record
// (last write wins; there is no weight history).
func (s *AppointmentService) RecordTriage(ctx context.Context, appointmentID, petID uuid.UUID, vitals TriageInput) (*models.Appointment, error) {
	if appointmentID == uuid.Nil || petID == uuid.Nil {
		return nil, fmt.Errorf("%w: appointment and pet ids are required", ErrValidation)
	}

	appt, err := s.Transition(ctx, appointmentID, models.AppointmentInProgress, TransitionContext{Vitals: &vitals})
	if err != nil {
		return nil, err
	}

	if vitals.WeightKg != nil {
		rows, err := s.pets.UpdateWeight(ctx, petID, *vitals.WeightKg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if rows == 0 {
			return nil, fmt.Errorf("%w: pet %s", ErrNotFound, petID)
		}
	}
	return appt, nil
}

// SweepResult reports what a no-show sweep actually changed.
type SweepResult struct {
	Count int         `json:"count"`
	IDs   []uuid.UUID `json:"ids"`
}

// SweepNoShows force-transitions every overdue, never-checked-in appointment
// to no_show. The store applies the filter and the update as one conditional
// statement, so repeat or concurrent sweeps are harmless: a row that was
// checked in or already swept simply no longer matches.
func (s *AppointmentService) SweepNoShows(ctx context.Context) (*SweepResult, error) {
	now := time.Now()
	cutoff := now.Add(-s.gracePeriod)

	ids, err := s.appointments.SweepNoShows(ctx, cutoff, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if len(ids) > 0 {
		log.Printf("[sweep] marked %d appointment(s) no_show (cutoff %s)", len(ids), cutoff.Format(time.RFC3339))
	}
	return &SweepResult{Count: len(ids), IDs: ids}, nil
}

// StartSweepScheduler registers the recurring sweep. The cron job and the
// on-demand endpoint share SweepNoShows, so there is exactly one filter
// predicate.
func (s *AppointmentService) StartSweepScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := s.SweepNoShows(context.Background()); err != nil {
			log.Printf("[sweep] scheduled run failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	c.Start()
	log.Printf("[sweep] scheduler started (%s)", schedule)
	return c, nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vetdesk-backend/models"
	"vetdesk-backend/services"
)

type AppointmentRepository struct {
	db *gorm.DB
}

var _ services.AppointmentStore = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter services.AppointmentFilter) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{}).Order("scheduled_start asc")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.VeterinarianID != nil {
		query = query.Where("veterinarian_id = ?", *filter.VeterinarianID)
	}
	if filter.From != nil {
		query = query.Where("scheduled_start >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_start < ?", *filter.To)
	}
	if filter.PetNameSearch != "" {
		query = query.Select("appointments.*").
			Joins("JOIN pets ON pets.id = appointments.pet_id").
			Where("pets.name ILIKE ?", "%"+filter.PetNameSearch+"%")
	}

	var appts []models.Appointment
	if err := query.Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

// UpdateStatus is the compare-and-swap write behind every transition: the
// WHERE clause re-checks the status the caller saw, so a concurrent winner
// leaves this update with zero affected rows.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, upd services.StatusUpdate) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, upd.From)
	if upd.RequireNotCheckedIn {
		query = query.Where("checked_in_at IS NULL")
	}

	res := query.Updates(upd.Fields)
	return res.RowsAffected, res.Error
}

// SweepNoShows transitions every overdue unattended appointment in a single
// conditional UPDATE ... RETURNING, so a row that checked in between any
// earlier read and this write simply does not match.
func (r *AppointmentRepository) SweepNoShows(ctx context.Context, cutoff, now time.Time) ([]uuid.UUID, error) {
	var swept []models.Appointment
	res := r.db.WithContext(ctx).Model(&swept).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("status IN ? AND scheduled_start <= ? AND checked_in_at IS NULL",
			models.SweepableStatuses(), cutoff).
		Updates(map[string]interface{}{
			"status":     models.AppointmentNoShow,
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	ids := make([]uuid.UUID, 0, len(swept))
	for _, appt := range swept {
		ids = append(ids, appt.ID)
	}
	return ids, nil
}

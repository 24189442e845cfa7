package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vetdesk-backend/models"
	"vetdesk-backend/services"
)

type PetRepository struct {
	db *gorm.DB
}

var _ services.PetStore = (*PetRepository)(nil)

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

// UpdateWeight overwrites the pet's recorded weight. Last write wins.
func (r *PetRepository) UpdateWeight(ctx context.Context, id uuid.UUID, weightKg float64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Pet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_weight_kg": weightKg,
			"updated_at":        time.Now(),
		})
	return res.RowsAffected, res.Error
}

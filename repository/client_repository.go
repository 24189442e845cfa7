package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vetdesk-backend/models"
	"vetdesk-backend/services"
)

type ClientRepository struct {
	db *gorm.DB
}

var _ services.ClientStore = (*ClientRepository)(nil)

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) CountPets(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Pet{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}

func (r *ClientRepository) CountAppointments(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM appointments a
		JOIN pets p ON p.id = a.pet_id
		WHERE p.client_id = ? AND a.deleted_at IS NULL
	`, clientID).Scan(&count).Error
	return count, err
}

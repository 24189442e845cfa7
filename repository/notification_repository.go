package repository

import (
	"context"

	"gorm.io/gorm"

	"vetdesk-backend/models"
	"vetdesk-backend/services"
)

type NotificationRepository struct {
	db *gorm.DB
}

var _ services.NotificationStore = (*NotificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *NotificationRepository) Update(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

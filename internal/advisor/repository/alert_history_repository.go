package repository

import (
	"context"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

type AlertHistoryRepository interface {
	ListByAlert(ctx context.Context, alertID uint) ([]entity.AlertHistory, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.AlertHistory, error)
}

type alertHistoryRepository struct {
	db *gorm.DB
}

func NewAlertHistoryRepository(db *gorm.DB) AlertHistoryRepository {
	return &alertHistoryRepository{db: db}
}

func (r *alertHistoryRepository) ListByAlert(ctx context.Context, alertID uint) ([]entity.AlertHistory, error) {
	var histories []entity.AlertHistory
	if err := r.db.WithContext(ctx).Where("alert_id = ?", alertID).Order("triggered_at DESC").Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *alertHistoryRepository) ListByUser(ctx context.Context, userID uint) ([]entity.AlertHistory, error) {
	var histories []entity.AlertHistory
	err := r.db.WithContext(ctx).
		Joins("JOIN alerts ON alerts.id = alert_histories.alert_id").
		Where("alerts.user_id = ?", userID).
		Order("alert_histories.triggered_at DESC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

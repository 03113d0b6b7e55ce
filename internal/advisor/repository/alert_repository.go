package repository

import (
	"context"
	"errors"
	"time"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

// ErrAlertNotActive is returned when a trigger races a delete or a previous
// trigger: the alert row no longer exists in an active state.
var ErrAlertNotActive = errors.New("alert is not active")

type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id uint) (*entity.Alert, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Alert, error)
	FindActive(ctx context.Context) ([]entity.Alert, error)
	Update(ctx context.Context, id uint, update entity.AlertUpdate) error
	Delete(ctx context.Context, id uint) error
	Trigger(ctx context.Context, alert *entity.Alert, observedPrice float64, at time.Time) (*entity.AlertHistory, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) GetByID(ctx context.Context, id uint) (*entity.Alert, error) {
	var alert entity.Alert
	if err := r.db.WithContext(ctx).First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Alert, error) {
	var alerts []entity.Alert
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) FindActive(ctx context.Context) ([]entity.Alert, error) {
	var alerts []entity.Alert
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) Update(ctx context.Context, id uint, update entity.AlertUpdate) error {
	fields := update.Fields()
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&entity.Alert{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *alertRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Alert{}, id).Error
}

// Trigger atomically deactivates an active alert and appends its history
// row. The deactivation is guarded on is_active so a re-run, a concurrent
// sweep or a racing delete can never produce a second history row; those
// cases return ErrAlertNotActive.
func (r *alertRepository) Trigger(ctx context.Context, alert *entity.Alert, observedPrice float64, at time.Time) (*entity.AlertHistory, error) {
	history := &entity.AlertHistory{
		AlertID:       alert.ID,
		Symbol:        alert.Symbol,
		TargetPrice:   alert.TargetPrice,
		ObservedPrice: observedPrice,
		TriggeredAt:   at,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Alert{}).
			Where("id = ? AND is_active = ?", alert.ID, true).
			Updates(map[string]interface{}{"is_active": false, "triggered_at": at})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlertNotActive
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return nil, err
	}

	alert.IsActive = false
	alert.TriggeredAt = &at
	return history, nil
}

package repository

import (
	"context"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

type WatchlistRepository interface {
	Add(ctx context.Context, item *entity.WatchlistItem) error
	Remove(ctx context.Context, userID uint, symbol string) error
	ListByUser(ctx context.Context, userID uint) ([]entity.WatchlistItem, error)
	DistinctSymbols(ctx context.Context) ([]string, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Add(ctx context.Context, item *entity.WatchlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *watchlistRepository) Remove(ctx context.Context, userID uint, symbol string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND symbol = ?", userID, symbol).Delete(&entity.WatchlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *watchlistRepository) ListByUser(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
	var items []entity.WatchlistItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *watchlistRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).Model(&entity.WatchlistItem{}).Distinct("symbol").Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

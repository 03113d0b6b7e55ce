package repository

import (
	"context"
	"time"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

type NewsRepository interface {
	Create(ctx context.Context, news *entity.StockNews) error
	ExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error)
	GetRecent(ctx context.Context, symbol string, since time.Time) ([]entity.StockNews, error)
	CreateSummary(ctx context.Context, summary *entity.NewsSentimentSummary) error
	GetLastSummary(ctx context.Context, symbol string, since time.Time) (*entity.NewsSentimentSummary, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *entity.StockNews) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// ExistingHashes reports which of the given article hashes are already
// stored, so re-scraped items can be skipped.
func (r *newsRepository) ExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error) {
	if len(hashes) == 0 {
		return map[string]bool{}, nil
	}
	var found []string
	err := r.db.WithContext(ctx).Model(&entity.StockNews{}).
		Where("hash_identifier IN (?)", hashes).
		Pluck("hash_identifier", &found).Error
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(found))
	for _, h := range found {
		existing[h] = true
	}
	return existing, nil
}

func (r *newsRepository) GetRecent(ctx context.Context, symbol string, since time.Time) ([]entity.StockNews, error) {
	var news []entity.StockNews
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND published_at >= ?", symbol, since).
		Order("published_at DESC").
		Find(&news).Error
	if err != nil {
		return nil, err
	}
	return news, nil
}

func (r *newsRepository) CreateSummary(ctx context.Context, summary *entity.NewsSentimentSummary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

func (r *newsRepository) GetLastSummary(ctx context.Context, symbol string, since time.Time) (*entity.NewsSentimentSummary, error) {
	var summary entity.NewsSentimentSummary
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND created_at >= ?", symbol, since).
		Order("created_at DESC").
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

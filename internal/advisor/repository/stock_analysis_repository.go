package repository

import (
	"context"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

type StockAnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.StockAnalysis) error
	GetLatest(ctx context.Context, symbol string) (*entity.StockAnalysis, error)
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]entity.StockAnalysis, error)
}

type stockAnalysisRepository struct {
	db *gorm.DB
}

func NewStockAnalysisRepository(db *gorm.DB) StockAnalysisRepository {
	return &stockAnalysisRepository{db: db}
}

func (r *stockAnalysisRepository) Create(ctx context.Context, analysis *entity.StockAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *stockAnalysisRepository) GetLatest(ctx context.Context, symbol string) (*entity.StockAnalysis, error) {
	var analysis entity.StockAnalysis
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).Order("created_at DESC").First(&analysis).Error; err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *stockAnalysisRepository) ListBySymbol(ctx context.Context, symbol string, limit int) ([]entity.StockAnalysis, error) {
	var analyses []entity.StockAnalysis
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).Order("created_at DESC").Limit(limit).Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

package repository

import (
	"context"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *entity.Portfolio) error
	GetByID(ctx context.Context, id uint) (*entity.Portfolio, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error)
	Delete(ctx context.Context, id uint) error
	AddPosition(ctx context.Context, position *entity.Position) error
	RemovePosition(ctx context.Context, portfolioID, positionID uint) error
}

type portfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(ctx context.Context, portfolio *entity.Portfolio) error {
	return r.db.WithContext(ctx).Create(portfolio).Error
}

func (r *portfolioRepository) GetByID(ctx context.Context, id uint) (*entity.Portfolio, error) {
	var portfolio entity.Portfolio
	if err := r.db.WithContext(ctx).Preload("Positions").First(&portfolio, id).Error; err != nil {
		return nil, err
	}
	return &portfolio, nil
}

func (r *portfolioRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
	var portfolios []entity.Portfolio
	if err := r.db.WithContext(ctx).Preload("Positions").Where("user_id = ?", userID).Find(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (r *portfolioRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&entity.Position{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Portfolio{}, id).Error
	})
}

func (r *portfolioRepository) AddPosition(ctx context.Context, position *entity.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *portfolioRepository) RemovePosition(ctx context.Context, portfolioID, positionID uint) error {
	res := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID).Delete(&entity.Position{}, positionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

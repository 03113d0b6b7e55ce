package service

import (
	"context"

	"golang-stock-advisor/internal/advisor/analysis"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"
)

// PortfolioService manages portfolios and runs the aggregate risk analysis
// over their positions.
type PortfolioService interface {
	Create(ctx context.Context, req *dto.CreatePortfolioRequest) (*entity.Portfolio, error)
	GetByID(ctx context.Context, id uint) (*entity.Portfolio, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error)
	Delete(ctx context.Context, id uint) error
	AddPosition(ctx context.Context, portfolioID uint, req *dto.AddPositionRequest) (*entity.Position, error)
	RemovePosition(ctx context.Context, portfolioID, positionID uint) error
	Assess(ctx context.Context, id uint) (*analysis.PortfolioAssessment, error)
	Concentration(ctx context.Context, id uint) (*analysis.ConcentrationResult, error)
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	logger        *logger.Logger
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(portfolioRepo repository.PortfolioRepository, log *logger.Logger) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		logger:        log,
	}
}

func (s *portfolioService) Create(ctx context.Context, req *dto.CreatePortfolioRequest) (*entity.Portfolio, error) {
	portfolio := &entity.Portfolio{
		UserID: req.UserID,
		Name:   req.Name,
	}
	if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

func (s *portfolioService) GetByID(ctx context.Context, id uint) (*entity.Portfolio, error) {
	return s.portfolioRepo.GetByID(ctx, id)
}

func (s *portfolioService) ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
	return s.portfolioRepo.ListByUser(ctx, userID)
}

func (s *portfolioService) Delete(ctx context.Context, id uint) error {
	return s.portfolioRepo.Delete(ctx, id)
}

func (s *portfolioService) AddPosition(ctx context.Context, portfolioID uint, req *dto.AddPositionRequest) (*entity.Position, error) {
	position := &entity.Position{
		PortfolioID:  portfolioID,
		Symbol:       req.Symbol,
		Shares:       req.Shares,
		AvgCost:      req.AvgCost,
		CurrentPrice: req.CurrentPrice,
		Sector:       req.Sector,
		Beta:         req.Beta,
		Volatility:   req.Volatility,
	}
	if err := s.portfolioRepo.AddPosition(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}

func (s *portfolioService) RemovePosition(ctx context.Context, portfolioID, positionID uint) error {
	return s.portfolioRepo.RemovePosition(ctx, portfolioID, positionID)
}

// Assess runs the aggregate risk analysis over a portfolio's positions.
// Returns nil for an empty portfolio.
func (s *portfolioService) Assess(ctx context.Context, id uint) (*analysis.PortfolioAssessment, error) {
	portfolio, err := s.portfolioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return analysis.AssessPortfolio(portfolio.Positions), nil
}

// Concentration computes the percentage-scale concentration report for a
// portfolio. Returns nil for an empty portfolio.
func (s *portfolioService) Concentration(ctx context.Context, id uint) (*analysis.ConcentrationResult, error) {
	portfolio, err := s.portfolioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return analysis.ConcentrationReport(portfolio.Positions), nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-stock-advisor/internal/advisor/analysis"
	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/common"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/telegram"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
)

// AnalyzerService runs the full analysis pipeline for a symbol and persists
// the verdict.
type AnalyzerService interface {
	Analyze(ctx context.Context, param dto.AnalyzeStockParam) (*dto.StockAnalysisResult, error)
	GetLatest(ctx context.Context, symbol string) (*dto.StockAnalysisResult, error)
	AnalyzeWatchlist(ctx context.Context)
}

type analyzerService struct {
	cfg               *config.Config
	logger            *logger.Logger
	marketDataRepo    repository.MarketDataRepository
	stockAnalysisRepo repository.StockAnalysisRepository
	watchlistRepo     repository.WatchlistRepository
	newsService       NewsService
	redisClient       *redis.Client
	notifier          telegram.Notifier
}

// NewAnalyzerService creates a new analyzer service. notifier may be nil when
// Telegram delivery is not configured.
func NewAnalyzerService(cfg *config.Config, log *logger.Logger, marketDataRepo repository.MarketDataRepository, stockAnalysisRepo repository.StockAnalysisRepository, watchlistRepo repository.WatchlistRepository, newsService NewsService, redisClient *redis.Client, notifier telegram.Notifier) AnalyzerService {
	return &analyzerService{
		cfg:               cfg,
		logger:            log,
		marketDataRepo:    marketDataRepo,
		stockAnalysisRepo: stockAnalysisRepo,
		watchlistRepo:     watchlistRepo,
		newsService:       newsService,
		redisClient:       redisClient,
		notifier:          notifier,
	}
}

// Analyze fetches the series for a symbol, runs every analysis stage, and
// persists the combined result. Sentiment is best effort: a news failure
// degrades the analysis instead of failing it.
func (s *analyzerService) Analyze(ctx context.Context, param dto.AnalyzeStockParam) (*dto.StockAnalysisResult, error) {
	if param.Range == "" {
		param.Range = s.cfg.MarketData.DefaultRange
	}
	if param.Interval == "" {
		param.Interval = s.cfg.MarketData.DefaultInterval
	}

	data, err := s.marketDataRepo.GetStockData(ctx, dto.GetStockDataParam{
		Symbol:   param.Symbol,
		Range:    param.Range,
		Interval: param.Interval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock data: %w", err)
	}

	sentiment, err := s.newsService.GetSentiment(ctx, param.Symbol)
	if err != nil {
		s.logger.Warn("Failed to get sentiment, continuing without it",
			logger.ErrorField(err),
			logger.StringField("symbol", param.Symbol))
		sentiment = nil
	}

	trend := analysis.AnalyzeTrend(data.OHLCV)
	volume := analysis.AnalyzeVolume(data.OHLCV)
	risk := analysis.AssessRisk(data.OHLCV, 0)

	result := &dto.StockAnalysisResult{
		Symbol:      param.Symbol,
		MarketPrice: data.MarketPrice,
		Indicators:  analysis.Indicators(data.OHLCV),
		Trend:       trend,
		Volume:      volume,
		TrendRec:    analysis.RecommendTrend(trend, volume),
		Sentiment:   sentiment,
		Risk:        risk,
	}
	result.Opportunity = analysis.AssessOpportunity(result.Indicators, result.TrendRec, sentiment, &risk)

	if err := s.persist(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info("Stock analyzed",
		logger.StringField("symbol", param.Symbol),
		logger.StringField("recommendation", result.Opportunity.Recommendation),
		logger.Float64Field("opportunity_score", result.Opportunity.Score),
		logger.StringField("risk_level", string(result.Risk.Level)))
	return result, nil
}

func (s *analyzerService) persist(ctx context.Context, result *dto.StockAnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	record := &entity.StockAnalysis{
		Symbol:           result.Symbol,
		Recommendation:   result.Opportunity.Recommendation,
		Confidence:       result.Opportunity.Confidence,
		RiskLevel:        string(result.Risk.Level),
		RiskScore:        result.Risk.Score,
		OpportunityLevel: string(result.Opportunity.Level),
		OpportunityScore: result.Opportunity.Score,
		Data:             datatypes.JSON(payload),
	}
	if err := s.stockAnalysisRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to persist analysis: %w", err)
	}

	cacheKey := fmt.Sprintf(common.RedisKeyAnalysisResult, result.Symbol)
	if err := s.redisClient.Set(ctx, cacheKey, payload, s.cfg.MarketData.CacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to cache analysis result", logger.ErrorField(err))
	}
	return nil
}

// GetLatest returns the most recent analysis for a symbol, preferring the
// redis cache over the database.
func (s *analyzerService) GetLatest(ctx context.Context, symbol string) (*dto.StockAnalysisResult, error) {
	cacheKey := fmt.Sprintf(common.RedisKeyAnalysisResult, symbol)
	if payload, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
		var result dto.StockAnalysisResult
		if err := json.Unmarshal(payload, &result); err == nil {
			return &result, nil
		}
	}

	record, err := s.stockAnalysisRepo.GetLatest(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var result dto.StockAnalysisResult
	if err := json.Unmarshal(record.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored analysis: %w", err)
	}
	return &result, nil
}

// AnalyzeWatchlist analyzes every distinct watched symbol. One symbol
// failing does not stop the run.
func (s *analyzerService) AnalyzeWatchlist(ctx context.Context) {
	started := time.Now()
	symbols, err := s.watchlistRepo.DistinctSymbols(ctx)
	if err != nil {
		s.logger.Error("Failed to list watchlist symbols", logger.ErrorField(err))
		return
	}

	for _, symbol := range symbols {
		result, err := s.Analyze(ctx, dto.AnalyzeStockParam{
			Symbol:   symbol,
			Range:    s.cfg.Analyzer.Range,
			Interval: s.cfg.Analyzer.Interval,
		})
		if err != nil {
			s.logger.Error("Failed to analyze watchlist symbol",
				logger.ErrorField(err),
				logger.StringField("symbol", symbol))
			continue
		}
		s.notify(result)
	}

	s.logger.Info("Watchlist analysis completed",
		logger.IntField("symbols", len(symbols)),
		logger.Field("duration", time.Since(started)))
}

func (s *analyzerService) notify(result *dto.StockAnalysisResult) {
	if s.notifier == nil {
		return
	}

	msg := telegram.FormatAnalysisSummary(
		result.Symbol,
		result.Opportunity.Recommendation,
		result.Opportunity.Confidence,
		string(result.Risk.Level),
		string(result.Opportunity.Level),
		result.Opportunity.Reasons,
	)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Error("Failed to send analysis summary",
			logger.ErrorField(err),
			logger.StringField("symbol", result.Symbol))
	}
}

package service

import (
	"context"
	"errors"
	"time"

	"golang-stock-advisor/internal/advisor/analysis"
	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"

	"gorm.io/gorm"
)

// NewsService ingests news articles and maintains per-symbol sentiment
// summaries.
type NewsService interface {
	GetSentiment(ctx context.Context, symbol string) (*analysis.SentimentSummary, error)
	RefreshSentiment(ctx context.Context, symbol string) (*entity.NewsSentimentSummary, error)
}

type newsService struct {
	cfg           *config.Config
	logger        *logger.Logger
	newsRepo      repository.NewsRepository
	feedRepo      repository.NewsFeedRepository
	sentimentRepo repository.SentimentRepository
}

// NewNewsService creates a new news ingestion and sentiment service.
func NewNewsService(cfg *config.Config, log *logger.Logger, newsRepo repository.NewsRepository, feedRepo repository.NewsFeedRepository, sentimentRepo repository.SentimentRepository) NewsService {
	return &newsService{
		cfg:           cfg,
		logger:        log,
		newsRepo:      newsRepo,
		feedRepo:      feedRepo,
		sentimentRepo: sentimentRepo,
	}
}

// GetSentiment returns the sentiment summary for a symbol, reusing the last
// stored summary when it still falls inside the configured window.
func (s *newsService) GetSentiment(ctx context.Context, symbol string) (*analysis.SentimentSummary, error) {
	since := time.Now().Add(-s.cfg.News.SummaryWindow)

	summary, err := s.newsRepo.GetLastSummary(ctx, symbol, since)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		summary, err = s.RefreshSentiment(ctx, symbol)
		if err != nil {
			return nil, err
		}
	}
	if summary == nil {
		return nil, nil
	}

	return &analysis.SentimentSummary{
		TotalNews:        summary.TotalNews,
		PositiveCount:    summary.PositiveCount,
		NegativeCount:    summary.NegativeCount,
		NeutralCount:     summary.NeutralCount,
		OverallSentiment: summary.OverallSentiment,
		Score:            summary.Score,
	}, nil
}

// RefreshSentiment fetches fresh articles for a symbol, stores the new ones,
// and summarizes the window into a persisted sentiment summary. It returns
// nil without error when no articles are available.
func (s *newsService) RefreshSentiment(ctx context.Context, symbol string) (*entity.NewsSentimentSummary, error) {
	articles, err := s.feedRepo.Fetch(ctx, symbol, s.cfg.News.MaxNewsAgeDays)
	if err != nil {
		return nil, err
	}

	if len(articles) > 0 {
		hashes := make([]string, 0, len(articles))
		for _, article := range articles {
			hashes = append(hashes, article.HashIdentifier)
		}
		existing, err := s.newsRepo.ExistingHashes(ctx, hashes)
		if err != nil {
			return nil, err
		}

		for i := range articles {
			if existing[articles[i].HashIdentifier] {
				continue
			}
			if err := s.newsRepo.Create(ctx, &articles[i]); err != nil {
				s.logger.Error("Failed to store news article",
					logger.ErrorField(err),
					logger.StringField("symbol", symbol),
					logger.StringField("link", articles[i].Link))
				continue
			}
		}
	}

	since := time.Now().Add(-s.cfg.News.SummaryWindow)
	recent, err := s.newsRepo.GetRecent(ctx, symbol, since)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, nil
	}

	summary, err := s.sentimentRepo.Summarize(ctx, symbol, recent)
	if err != nil {
		return nil, err
	}

	if err := s.newsRepo.CreateSummary(ctx, summary); err != nil {
		return nil, err
	}

	s.logger.Info("Sentiment summary refreshed",
		logger.StringField("symbol", symbol),
		logger.IntField("total_news", summary.TotalNews),
		logger.Float64Field("score", summary.Score))
	return summary, nil
}

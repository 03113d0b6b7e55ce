package repository

import (
	"context"
	"strings"
	"time"

	"golang-stock-advisor/internal/entity"
)

// Sentiment labels attached to individual articles and summaries.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// SentimentRepository classifies a batch of articles and produces a
// sentiment summary for a symbol.
type SentimentRepository interface {
	Summarize(ctx context.Context, symbol string, articles []entity.StockNews) (*entity.NewsSentimentSummary, error)
}

// keywordSentimentRepository scores articles by counting positive and
// negative keywords. It is the default provider when no AI provider is
// configured.
type keywordSentimentRepository struct {
	positive []string
	negative []string
}

func NewKeywordSentimentRepository() SentimentRepository {
	return &keywordSentimentRepository{
		positive: []string{
			"beat", "beats", "growth", "surge", "rally", "upgrade", "record",
			"profit", "gain", "strong", "bullish", "outperform", "dividend",
		},
		negative: []string{
			"miss", "misses", "loss", "plunge", "drop", "downgrade", "lawsuit",
			"fraud", "weak", "bearish", "underperform", "layoff", "recall",
		},
	}
}

func (r *keywordSentimentRepository) Summarize(_ context.Context, symbol string, articles []entity.StockNews) (*entity.NewsSentimentSummary, error) {
	summary := &entity.NewsSentimentSummary{
		Symbol:    symbol,
		TotalNews: len(articles),
	}

	var start, end time.Time
	for i, article := range articles {
		if i == 0 || article.PublishedAt.Before(start) {
			start = article.PublishedAt
		}
		if article.PublishedAt.After(end) {
			end = article.PublishedAt
		}

		switch r.classify(article) {
		case SentimentPositive:
			summary.PositiveCount++
		case SentimentNegative:
			summary.NegativeCount++
		default:
			summary.NeutralCount++
		}
	}
	summary.SummaryStart = start
	summary.SummaryEnd = end

	if summary.TotalNews > 0 {
		summary.Score = float64(summary.PositiveCount-summary.NegativeCount) / float64(summary.TotalNews)
	}
	switch {
	case summary.Score > 0.2:
		summary.OverallSentiment = SentimentPositive
	case summary.Score < -0.2:
		summary.OverallSentiment = SentimentNegative
	default:
		summary.OverallSentiment = SentimentNeutral
	}
	return summary, nil
}

func (r *keywordSentimentRepository) classify(article entity.StockNews) string {
	text := strings.ToLower(article.Title + " " + article.Content)

	var positives, negatives int
	for _, word := range r.positive {
		positives += strings.Count(text, word)
	}
	for _, word := range r.negative {
		negatives += strings.Count(text, word)
	}

	switch {
	case positives > negatives:
		return SentimentPositive
	case negatives > positives:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

package entity

import (
	"time"

	"github.com/lib/pq"
)

// StockNews is a single scraped news article mentioning a symbol.
type StockNews struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Symbol         string    `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Title          string    `gorm:"type:text" json:"title"`
	Link           string    `gorm:"type:text" json:"link"`
	Content        string    `gorm:"type:text" json:"content"`
	Sentiment      string    `gorm:"type:varchar(10)" json:"sentiment"`
	PublishedAt    time.Time `json:"published_at"`
	HashIdentifier string    `gorm:"type:text;not null" json:"hash_identifier"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StockNews) TableName() string {
	return "stock_news"
}

// NewsSentimentSummary aggregates article sentiment for a symbol over a
// window. Score is in [-1,1], negative meaning bearish coverage.
type NewsSentimentSummary struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Symbol           string         `gorm:"type:varchar(20);not null;index" json:"symbol"`
	TotalNews        int            `json:"total_news"`
	PositiveCount    int            `json:"positive_count"`
	NegativeCount    int            `json:"negative_count"`
	NeutralCount     int            `json:"neutral_count"`
	OverallSentiment string         `gorm:"type:varchar(10)" json:"overall_sentiment"`
	Score            float64        `json:"score"`
	KeyIssues        pq.StringArray `gorm:"type:text[]" json:"key_issues"`
	SummaryStart     time.Time      `json:"summary_start"`
	SummaryEnd       time.Time      `json:"summary_end"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (NewsSentimentSummary) TableName() string {
	return "news_sentiment_summaries"
}

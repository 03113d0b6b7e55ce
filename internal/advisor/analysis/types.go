package analysis

import "time"

// Level buckets a score into a coarse severity / strength class.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// PricePoint is one row of OHLCV history, chronological order assumed.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// ScoreComponent is the result of one sub-analysis. Score is in [0,100].
type ScoreComponent struct {
	Name    string   `json:"name"`
	Score   float64  `json:"score"`
	Level   Level    `json:"level"`
	Reasons []string `json:"reasons"`
}

// Recommendation is a labeled verdict with confidence in [0,100].
type Recommendation struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// SentimentSummary aggregates news sentiment for a symbol. Score is in
// [-1,1], negative meaning bearish coverage.
type SentimentSummary struct {
	TotalNews        int     `json:"total_news"`
	PositiveCount    int     `json:"positive_count"`
	NegativeCount    int     `json:"negative_count"`
	NeutralCount     int     `json:"neutral_count"`
	OverallSentiment string  `json:"overall_sentiment"`
	Score            float64 `json:"score"`
}

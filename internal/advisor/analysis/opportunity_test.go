package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessOpportunityFlatSeriesWaits(t *testing.T) {
	// End-to-end over a 60-point flat series: every indicator is neutral,
	// the trend holds, and the blended verdict is WAIT at confidence 50.
	points := flatSeries(60, 100, 1000)

	snapshot := Indicators(points)
	trend := AnalyzeTrend(points)
	volume := AnalyzeVolume(points)
	trendRec := RecommendTrend(trend, volume)
	risk := AssessRisk(points, 1.0)

	out := AssessOpportunity(snapshot, trendRec, nil, &risk)

	assert.Equal(t, TechWait, out.Recommendation)
	assert.InDelta(t, 50, out.Confidence, 1e-9)
	assert.Equal(t, TrendHold, trendRec.Label)
	assert.Empty(t, out.Signals.BuySignals)
	assert.Empty(t, out.Signals.SellSignals)
}

func TestAssessOpportunitySentimentModifiers(t *testing.T) {
	tests := []struct {
		name      string
		sentiment *SentimentSummary
		wantDelta float64
	}{
		{
			name:      "positive sentiment raises the score",
			sentiment: &SentimentSummary{TotalNews: 5, Score: 0.6},
			wantDelta: sentimentBonus,
		},
		{
			name:      "negative sentiment lowers the score",
			sentiment: &SentimentSummary{TotalNews: 5, Score: -0.6},
			wantDelta: -sentimentPenalty,
		},
		{
			name:      "neutral sentiment changes nothing",
			sentiment: &SentimentSummary{TotalNews: 5, Score: 0.1},
			wantDelta: 0,
		},
		{
			name:      "no articles changes nothing",
			sentiment: &SentimentSummary{TotalNews: 0, Score: 0.9},
			wantDelta: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			baseline := AssessOpportunity(IndicatorSnapshot{}, nil, nil, nil)
			adjusted := AssessOpportunity(IndicatorSnapshot{}, nil, tc.sentiment, nil)
			assert.InDelta(t, baseline.Score+tc.wantDelta, adjusted.Score, 1e-9)
		})
	}
}

func TestAssessOpportunityRiskModifiers(t *testing.T) {
	baseline := AssessOpportunity(IndicatorSnapshot{}, nil, nil, nil)

	high := &RiskAssessment{Level: LevelHigh}
	low := &RiskAssessment{Level: LevelLow}
	medium := &RiskAssessment{Level: LevelMedium}

	assert.InDelta(t, baseline.Score-riskHighPenalty, AssessOpportunity(IndicatorSnapshot{}, nil, nil, high).Score, 1e-9)
	assert.InDelta(t, baseline.Score+riskLowBonus, AssessOpportunity(IndicatorSnapshot{}, nil, nil, low).Score, 1e-9)
	assert.InDelta(t, baseline.Score, AssessOpportunity(IndicatorSnapshot{}, nil, nil, medium).Score, 1e-9)
}

func TestAssessOpportunityScoreStaysInRange(t *testing.T) {
	rsiLow := 5.0
	bullish := IndicatorSnapshot{
		RSI:        &rsiLow,
		MACD:       &MACDResult{Histogram: 1},
		Bollinger:  &BollingerResult{Position: -0.2},
		Stochastic: &StochasticResult{K: 5},
	}
	trendRec := &Recommendation{Label: TrendStrongBuy}
	sentiment := &SentimentSummary{TotalNews: 10, Score: 0.9}
	risk := &RiskAssessment{Level: LevelLow}

	out := AssessOpportunity(bullish, trendRec, sentiment, risk)
	assert.Equal(t, TechBuy, out.Recommendation)
	assert.LessOrEqual(t, out.Score, 100.0)
	assert.Equal(t, LevelHigh, out.Level)

	rsiHigh := 95.0
	bearish := IndicatorSnapshot{
		RSI:        &rsiHigh,
		MACD:       &MACDResult{Histogram: -1},
		Bollinger:  &BollingerResult{Position: 1.2},
		Stochastic: &StochasticResult{K: 95},
	}
	trendRec = &Recommendation{Label: TrendStrongSell}
	sentiment = &SentimentSummary{TotalNews: 10, Score: -0.9}
	risk = &RiskAssessment{Level: LevelHigh}

	out = AssessOpportunity(bearish, trendRec, sentiment, risk)
	assert.Equal(t, TechSell, out.Recommendation)
	assert.GreaterOrEqual(t, out.Score, 0.0)
	assert.Equal(t, LevelLow, out.Level)
}

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTrendInsufficientData(t *testing.T) {
	assert.Nil(t, AnalyzeTrend(flatSeries(TrendMinPoints-1, 100, 1000)))
	assert.Nil(t, AnalyzeVolume(flatSeries(TrendMinPoints-1, 100, 1000)))
}

func TestAnalyzeTrendDirection(t *testing.T) {
	tests := []struct {
		name      string
		points    []PricePoint
		direction string
	}{
		{
			name:      "rising above 5 percent",
			points:    trendingSeries(30, 100, 1, 1000),
			direction: DirectionRising,
		},
		{
			name:      "falling below minus 5 percent",
			points:    trendingSeries(30, 100, -1, 1000),
			direction: DirectionFalling,
		},
		{
			name:      "flat series",
			points:    flatSeries(30, 100, 1000),
			direction: DirectionFlat,
		},
		{
			name:      "small move stays flat",
			points:    trendingSeries(30, 100, 0.1, 1000),
			direction: DirectionFlat,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trend := AnalyzeTrend(tc.points)
			require.NotNil(t, trend)
			assert.Equal(t, tc.direction, trend.Direction)
		})
	}
}

func TestAnalyzeTrendFlatSeriesStats(t *testing.T) {
	trend := AnalyzeTrend(flatSeries(60, 100, 1000))
	require.NotNil(t, trend)

	assert.Equal(t, DirectionFlat, trend.Direction)
	assert.Zero(t, trend.TotalChangePct)
	assert.Zero(t, trend.MomentumPct)
	assert.Zero(t, trend.Volatility)
	assert.Zero(t, trend.Strength)
}

func TestAnalyzeVolumeQualityExclusion(t *testing.T) {
	// Four transitions: price up/vol up, price down/vol up, price up/vol
	// down (excluded), price down/vol down (excluded). Quality must count
	// only the rising-volume days: 1 of 2.
	points := flatSeries(11, 100, 1000)
	points[1].Close = 101
	points[1].Volume = 2000 // up with volume
	points[2].Close = 100
	points[2].Volume = 3000 // down with volume
	points[3].Close = 101
	points[3].Volume = 1000 // up, volume fell: excluded
	points[4].Close = 100
	points[4].Volume = 500 // down, volume fell: excluded

	volume := AnalyzeVolume(points)
	require.NotNil(t, volume)
	assert.InDelta(t, 0.5, volume.Quality, 1e-9)
}

func TestAnalyzeVolumeRatio(t *testing.T) {
	points := flatSeries(20, 100, 1000)
	points[len(points)-1].Volume = 3000

	volume := AnalyzeVolume(points)
	require.NotNil(t, volume)
	// 19 days at 1000 plus one at 3000: mean 1100, ratio 3000/1100.
	assert.InDelta(t, 3000.0/1100.0, volume.Ratio, 1e-9)
}

func TestRecommendTrendLabels(t *testing.T) {
	tests := []struct {
		name      string
		trend     TrendAnalysis
		wantLabel string
	}{
		{
			name:      "rising with momentum",
			trend:     TrendAnalysis{Direction: DirectionRising, MomentumPct: 2},
			wantLabel: TrendStrongBuy,
		},
		{
			name:      "rising without momentum",
			trend:     TrendAnalysis{Direction: DirectionRising, MomentumPct: 0.5},
			wantLabel: TrendWeakBuy,
		},
		{
			name:      "falling with momentum",
			trend:     TrendAnalysis{Direction: DirectionFalling, MomentumPct: -2},
			wantLabel: TrendStrongSell,
		},
		{
			name:      "falling without momentum",
			trend:     TrendAnalysis{Direction: DirectionFalling, MomentumPct: -0.5},
			wantLabel: TrendWeakSell,
		},
		{
			name:      "flat",
			trend:     TrendAnalysis{Direction: DirectionFlat},
			wantLabel: TrendHold,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := RecommendTrend(&tc.trend, nil)
			require.NotNil(t, rec)
			assert.Equal(t, tc.wantLabel, rec.Label)
		})
	}
}

func TestRecommendTrendLabelNotRevisedByAdjustments(t *testing.T) {
	// A strong-sell trend with bullish volume keeps the SELL label; volume
	// only moves the confidence.
	trend := &TrendAnalysis{Direction: DirectionFalling, MomentumPct: -3, Volatility: 1}
	volume := &VolumeAnalysis{Ratio: 2.0, Quality: 0.9}

	rec := RecommendTrend(trend, volume)
	require.NotNil(t, rec)
	assert.Equal(t, TrendStrongSell, rec.Label)
	// 30 + 20 + 15 + 10 = 75.
	assert.InDelta(t, 75, rec.Confidence, 1e-9)
}

func TestRecommendTrendConfidenceClamp(t *testing.T) {
	t.Run("upper bound stays within range", func(t *testing.T) {
		trend := &TrendAnalysis{Direction: DirectionRising, MomentumPct: 3, Volatility: 1}
		volume := &VolumeAnalysis{Ratio: 2.0, Quality: 0.9}

		rec := RecommendTrend(trend, volume)
		require.NotNil(t, rec)
		assert.InDelta(t, 75, rec.Confidence, 1e-9)
		assert.LessOrEqual(t, rec.Confidence, 100.0)
	})

	t.Run("negative sum clamps to zero", func(t *testing.T) {
		// Flat +5, low volume -10, high volatility -10: raw -15.
		trend := &TrendAnalysis{Direction: DirectionFlat, Volatility: 10}
		volume := &VolumeAnalysis{Ratio: 0.1, Quality: 0.1}

		rec := RecommendTrend(trend, volume)
		require.NotNil(t, rec)
		assert.Zero(t, rec.Confidence)
	})
}

func TestRecommendTrendNilTrend(t *testing.T) {
	assert.Nil(t, RecommendTrend(nil, &VolumeAnalysis{Ratio: 1}))
}

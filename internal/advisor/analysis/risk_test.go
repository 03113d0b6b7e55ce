package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessRiskShortSeriesUsesOnlyMarketComponent(t *testing.T) {
	// 5 points is below every sub-analysis floor except market risk, which
	// needs no series at all.
	assessment := AssessRisk(flatSeries(5, 100, 1000), 1.2)

	require.Len(t, assessment.Components, 1)
	assert.Equal(t, "market", assessment.Components[0].Name)
	assert.Nil(t, assessment.Volatility)
	// Overall score is the mean of the one available component.
	assert.InDelta(t, assessment.Components[0].Score, assessment.Score, 1e-9)
}

func TestAssessRiskFlatSeriesIsLowRisk(t *testing.T) {
	// Bump the latest volume so the volume component reads a healthy ratio;
	// everything else about the series is inert.
	points := flatSeries(60, 100, 1000)
	points[len(points)-1].Volume = 2000

	assessment := AssessRisk(points, 0.8)

	require.NotNil(t, assessment.Volatility)
	assert.Zero(t, assessment.Volatility.DailyPct)
	assert.Zero(t, assessment.Volatility.AnnualizedPct)
	assert.Zero(t, assessment.Volatility.MaxDrawdown)
	assert.Equal(t, LevelLow, assessment.Level)
	assert.Equal(t, "normal", assessment.Advice)
}

func TestAssessRiskBuckets(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		wantLevel  Level
		wantAdvice string
	}{
		{name: "high", score: 60, wantLevel: LevelHigh, wantAdvice: "risk warning"},
		{name: "medium", score: 35, wantLevel: LevelMedium, wantAdvice: "monitor"},
		{name: "low", score: 34.9, wantLevel: LevelLow, wantAdvice: "normal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level, advice := bucketRiskScore(tc.score)
			assert.Equal(t, tc.wantLevel, level)
			assert.Equal(t, tc.wantAdvice, advice)
		})
	}
}

func TestVolatilityRiskMinimumWindow(t *testing.T) {
	c, stats := VolatilityRisk(flatSeries(VolatilityRiskMinPoints-1, 100, 1000))
	assert.Nil(t, c)
	assert.Nil(t, stats)
}

func TestVolatilityRiskReportsVaR(t *testing.T) {
	// Alternate +2% and -2% days: VaR quantiles land on the -2% returns.
	points := flatSeries(60, 100, 1000)
	price := 100.0
	for i := 1; i < len(points); i++ {
		if i%2 == 0 {
			price *= 0.98
		} else {
			price *= 1.02
		}
		points[i].Close = price
		points[i].High = price
		points[i].Low = price
	}

	c, stats := VolatilityRisk(points)
	require.NotNil(t, c)
	require.NotNil(t, stats)

	assert.InDelta(t, -0.02, stats.VaR95, 1e-9)
	assert.InDelta(t, -0.02, stats.VaR99, 1e-9)
	assert.Negative(t, stats.MaxDrawdown)
	assert.Positive(t, stats.AnnualizedPct)
}

func TestVolumeRisk(t *testing.T) {
	t.Run("below minimum window", func(t *testing.T) {
		assert.Nil(t, VolumeRisk(flatSeries(VolumeRiskMinPoints-1, 100, 1000)))
	})

	t.Run("steady volume with strong ratio is low risk", func(t *testing.T) {
		points := flatSeries(30, 100, 1000)
		points[len(points)-1].Volume = 1700

		c := VolumeRisk(points)
		require.NotNil(t, c)
		assert.Equal(t, LevelLow, c.Level)
		assert.InDelta(t, riskScoreLow, c.Score, 1e-9)
	})

	t.Run("steady average volume is medium risk", func(t *testing.T) {
		c := VolumeRisk(flatSeries(30, 100, 1000))
		require.NotNil(t, c)
		assert.Equal(t, LevelMedium, c.Level)
	})

	t.Run("collapsed volume is high risk", func(t *testing.T) {
		points := flatSeries(30, 100, 1000)
		points[len(points)-1].Volume = 100

		c := VolumeRisk(points)
		require.NotNil(t, c)
		assert.Equal(t, LevelHigh, c.Level)
	})
}

func TestPriceRisk(t *testing.T) {
	t.Run("below minimum window", func(t *testing.T) {
		assert.Nil(t, PriceRisk(flatSeries(PriceRiskMinPoints-1, 100, 1000)))
	})

	t.Run("crash adds change risk", func(t *testing.T) {
		// Price collapses from 100 to 70: bottom of range plus a drop over
		// 20%: base 30 + 20 = 50, MEDIUM.
		points := trendingSeries(31, 100, -1, 1000)

		c := PriceRisk(points)
		require.NotNil(t, c)
		assert.InDelta(t, 50, c.Score, 1e-9)
		assert.Equal(t, LevelMedium, c.Level)
	})

	t.Run("runup near range top", func(t *testing.T) {
		// Steady climb keeps price in the top of the range; total change
		// over 50% adds 10: base 70 + 10 = 80, HIGH.
		points := trendingSeries(31, 100, 2, 1000)

		c := PriceRisk(points)
		require.NotNil(t, c)
		assert.InDelta(t, 80, c.Score, 1e-9)
		assert.Equal(t, LevelHigh, c.Level)
	})
}

func TestMarketRisk(t *testing.T) {
	tests := []struct {
		name      string
		beta      float64
		wantLevel Level
		wantScore float64
	}{
		{name: "aggressive beta", beta: 1.6, wantLevel: LevelHigh, wantScore: 70},
		{name: "market beta", beta: 1.2, wantLevel: LevelMedium, wantScore: 40},
		{name: "defensive beta", beta: 0.7, wantLevel: LevelLow, wantScore: 20},
		{name: "missing beta defaults to 1.0", beta: 0, wantLevel: LevelLow, wantScore: 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := MarketRisk(tc.beta)
			assert.Equal(t, tc.wantLevel, c.Level)
			assert.InDelta(t, tc.wantScore, c.Score, 1e-9)
		})
	}
}

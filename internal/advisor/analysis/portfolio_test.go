package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-advisor/internal/entity"
)

func position(symbol string, shares, avgCost, price float64, sector string, beta, vol float64) entity.Position {
	return entity.Position{
		Symbol:       symbol,
		Shares:       shares,
		AvgCost:      avgCost,
		CurrentPrice: price,
		Sector:       sector,
		Beta:         beta,
		Volatility:   vol,
	}
}

func TestAssessPortfolioEmpty(t *testing.T) {
	assert.Nil(t, AssessPortfolio(nil))
	assert.Nil(t, AssessPortfolio([]entity.Position{position("A", 10, 5, 0, "Tech", 1, 0.2)}))
}

func TestAssessPortfolioTotals(t *testing.T) {
	positions := []entity.Position{
		position("AAA", 10, 90, 100, "Tech", 1.0, 0.20),
		position("BBB", 5, 100, 120, "Energy", 1.2, 0.30),
	}

	out := AssessPortfolio(positions)
	require.NotNil(t, out)

	assert.InDelta(t, 1600, out.TotalValue, 1e-9)
	assert.InDelta(t, 1400, out.TotalCost, 1e-9)
	assert.InDelta(t, (1600.0-1400.0)/1400.0*100, out.ReturnPct, 1e-9)
}

func TestAssessPortfolioVolatilityDampening(t *testing.T) {
	// Single position: weighted volatility equals the position's, then the
	// fixed 0.7 dampening factor applies.
	out := AssessPortfolio([]entity.Position{position("AAA", 10, 90, 100, "Tech", 1.0, 0.30)})
	require.NotNil(t, out)
	assert.InDelta(t, 0.30*CorrelationDampening, out.Volatility, 1e-9)
}

func TestHHIMonotonicity(t *testing.T) {
	// Same total value spread over fewer positions never lowers the HHI.
	spread := []entity.Position{
		position("A", 1, 1, 250, "S1", 1, 0.2),
		position("B", 1, 1, 250, "S2", 1, 0.2),
		position("C", 1, 1, 250, "S3", 1, 0.2),
		position("D", 1, 1, 250, "S4", 1, 0.2),
	}
	concentrated := []entity.Position{
		position("A", 1, 1, 700, "S1", 1, 0.2),
		position("B", 1, 1, 300, "S2", 1, 0.2),
	}
	single := []entity.Position{
		position("A", 1, 1, 1000, "S1", 1, 0.2),
	}

	outSpread := AssessPortfolio(spread)
	outConcentrated := AssessPortfolio(concentrated)
	outSingle := AssessPortfolio(single)
	require.NotNil(t, outSpread)
	require.NotNil(t, outConcentrated)
	require.NotNil(t, outSingle)

	assert.InDelta(t, 0.25, outSpread.HHI, 1e-9)
	assert.Less(t, outSpread.HHI, outConcentrated.HHI)
	assert.Less(t, outConcentrated.HHI, outSingle.HHI)
	assert.InDelta(t, 1.0, outSingle.HHI, 1e-9)
	assert.Equal(t, LevelHigh, outSingle.ConcentrationLevel)
}

func TestSharpeZeroVolatilityGuard(t *testing.T) {
	out := AssessPortfolio([]entity.Position{position("AAA", 10, 50, 100, "Tech", 1.0, 0)})
	require.NotNil(t, out)
	assert.Zero(t, out.Sharpe)
}

func TestHealthScoreRange(t *testing.T) {
	tests := []struct {
		name                               string
		returnPct, volatility, sharpe, hhi float64
	}{
		{name: "everything terrible", returnPct: -90, volatility: 3, sharpe: -5, hhi: 1},
		{name: "everything great", returnPct: 50, volatility: 0.05, sharpe: 3, hhi: 0.05},
		{name: "extreme negatives", returnPct: -1e9, volatility: 1e9, sharpe: -1e9, hhi: 1e9},
		{name: "zeroes", returnPct: 0, volatility: 0, sharpe: 0, hhi: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score := healthScore(tc.returnPct, tc.volatility, tc.sharpe, tc.hhi)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		})
	}
}

func TestHealthScoreBands(t *testing.T) {
	// Best bands everywhere: 30 + 25 + 20 + 25 = 100.
	assert.InDelta(t, 100, healthScore(15, 0.1, 1.5, 0.1), 1e-9)
	// Worst bands everywhere: 0.
	assert.Zero(t, healthScore(-20, 0.5, -1, 0.6))
}

func TestRecommendationsFireIndependently(t *testing.T) {
	// One losing, concentrated, volatile, high-beta, single-sector
	// portfolio triggers every rule at once.
	out := AssessPortfolio([]entity.Position{
		position("AAA", 10, 200, 100, "Tech", 2.0, 0.8),
	})
	require.NotNil(t, out)
	assert.Len(t, out.Recommendations, 5)
}

func TestRecommendationsMaintainFallback(t *testing.T) {
	positions := []entity.Position{
		position("A", 1, 90, 100, "S1", 0.9, 0.10),
		position("B", 1, 90, 100, "S2", 0.9, 0.10),
		position("C", 1, 90, 100, "S3", 0.9, 0.10),
		position("D", 1, 90, 100, "S4", 0.9, 0.10),
		position("E", 1, 90, 100, "S5", 0.9, 0.10),
		position("F", 1, 90, 100, "S6", 0.9, 0.10),
		position("G", 1, 90, 100, "S7", 0.9, 0.10),
	}

	out := AssessPortfolio(positions)
	require.NotNil(t, out)
	require.Len(t, out.Recommendations, 1)
	assert.Contains(t, out.Recommendations[0], "maintain")
}

func TestConcentrationReportUsesPercentageScale(t *testing.T) {
	evenly := []entity.Position{
		position("A", 1, 1, 100, "S1", 1, 0.2),
		position("B", 1, 1, 100, "S1", 1, 0.2),
		position("C", 1, 1, 100, "S1", 1, 0.2),
		position("D", 1, 1, 100, "S1", 1, 0.2),
		position("E", 1, 1, 100, "S1", 1, 0.2),
		position("F", 1, 1, 100, "S1", 1, 0.2),
		position("G", 1, 1, 100, "S1", 1, 0.2),
		position("H", 1, 1, 100, "S1", 1, 0.2),
	}

	report := ConcentrationReport(evenly)
	require.NotNil(t, report)
	// 8 positions at 12.5% each: HHI = 8 * 12.5^2 = 1250 on the percentage
	// scale, below the 1500 cutoff.
	assert.InDelta(t, 1250, report.HHI, 1e-9)
	assert.Equal(t, LevelLow, report.Level)

	single := ConcentrationReport([]entity.Position{position("A", 1, 1, 100, "S1", 1, 0.2)})
	require.NotNil(t, single)
	assert.InDelta(t, 10000, single.HHI, 1e-9)
	assert.Equal(t, LevelHigh, single.Level)
}

func TestAssessPortfolioMissingFieldsDefault(t *testing.T) {
	// Zero beta falls back to 1.0 rather than dragging the weighted beta
	// to zero.
	out := AssessPortfolio([]entity.Position{position("AAA", 10, 90, 100, "", 0, 0.2)})
	require.NotNil(t, out)
	assert.InDelta(t, 1.0, out.Beta, 1e-9)
	assert.Contains(t, out.SectorWeights, "UNKNOWN")
}

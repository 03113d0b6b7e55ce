package analysis

import (
	"fmt"
	"math"

	"golang-stock-advisor/internal/entity"
)

// Portfolio aggregation constants. HHI here is on the fractional 0-1 scale;
// ConcentrationReport below uses the percentage scale with its own cutoffs.
// The two scales are intentionally kept separate.
const (
	CorrelationDampening = 0.7
	RiskFreeRate         = 0.02

	HHILowCutoff    = 0.15
	HHIMediumCutoff = 0.25

	SectorLowCutoff    = 0.3
	SectorMediumCutoff = 0.5
	SectorTargetCount  = 10

	VaR95Z = 1.645
	VaR99Z = 2.326

	PortfolioBetaHighCutoff = 1.5
	PortfolioVolHighCutoff  = 0.40
)

// PortfolioAssessment is the aggregate risk view over a basket of positions.
type PortfolioAssessment struct {
	TotalValue           float64            `json:"total_value"`
	TotalCost            float64            `json:"total_cost"`
	ReturnPct            float64            `json:"return_pct"`
	Volatility           float64            `json:"volatility"`
	Beta                 float64            `json:"beta"`
	HHI                  float64            `json:"hhi"`
	ConcentrationLevel   Level              `json:"concentration_level"`
	SectorWeights        map[string]float64 `json:"sector_weights"`
	MaxSectorWeight      float64            `json:"max_sector_weight"`
	SectorLevel          Level              `json:"sector_level"`
	DiversificationScore float64            `json:"diversification_score"`
	Sharpe               float64            `json:"sharpe"`
	VaR95                float64            `json:"var_95"`
	VaR99                float64            `json:"var_99"`
	HealthScore          float64            `json:"health_score"`
	Recommendations      []string           `json:"recommendations"`
}

// AssessPortfolio aggregates a basket of positions into one risk view.
// Returns nil for an empty basket or a zero-value portfolio. Missing
// position attributes (zero beta, zero volatility) fall back to defaults
// instead of failing the whole computation.
func AssessPortfolio(positions []entity.Position) *PortfolioAssessment {
	if len(positions) == 0 {
		return nil
	}

	var totalValue, totalCost float64
	for _, p := range positions {
		totalValue += p.MarketValue()
		totalCost += p.CostBasis()
	}
	if totalValue == 0 {
		return nil
	}

	out := &PortfolioAssessment{
		TotalValue:    totalValue,
		TotalCost:     totalCost,
		SectorWeights: map[string]float64{},
	}
	if totalCost != 0 {
		out.ReturnPct = (totalValue - totalCost) / totalCost * 100
	}

	// Value-weighted volatility and beta, dampened by a fixed correlation
	// factor rather than a covariance matrix.
	for _, p := range positions {
		weight := p.MarketValue() / totalValue
		out.HHI += weight * weight

		vol := p.Volatility
		beta := p.Beta
		if beta == 0 {
			beta = 1.0
		}
		out.Volatility += weight * vol
		out.Beta += weight * beta

		sector := p.Sector
		if sector == "" {
			sector = "UNKNOWN"
		}
		out.SectorWeights[sector] += weight
	}
	out.Volatility *= CorrelationDampening

	switch {
	case out.HHI < HHILowCutoff:
		out.ConcentrationLevel = LevelLow
	case out.HHI < HHIMediumCutoff:
		out.ConcentrationLevel = LevelMedium
	default:
		out.ConcentrationLevel = LevelHigh
	}

	for _, w := range out.SectorWeights {
		if w > out.MaxSectorWeight {
			out.MaxSectorWeight = w
		}
	}
	switch {
	case out.MaxSectorWeight < SectorLowCutoff:
		out.SectorLevel = LevelLow
	case out.MaxSectorWeight < SectorMediumCutoff:
		out.SectorLevel = LevelMedium
	default:
		out.SectorLevel = LevelHigh
	}
	out.DiversificationScore = math.Min(1, float64(len(out.SectorWeights))/SectorTargetCount)

	if out.Volatility != 0 {
		out.Sharpe = (out.ReturnPct/100 - RiskFreeRate) / out.Volatility
	}

	out.VaR95 = totalValue * out.Volatility * VaR95Z
	out.VaR99 = totalValue * out.Volatility * VaR99Z

	out.HealthScore = healthScore(out.ReturnPct, out.Volatility, out.Sharpe, out.HHI)
	out.Recommendations = recommendations(out)
	return out
}

// healthScore sums banded points for return, volatility, Sharpe and
// concentration, clamped to [0,100].
func healthScore(returnPct, volatility, sharpe, hhi float64) float64 {
	var score float64

	switch {
	case returnPct < -10:
		score += 0
	case returnPct < 0:
		score += 5
	case returnPct < 5:
		score += 10
	case returnPct < 10:
		score += 20
	default:
		score += 30
	}

	switch {
	case volatility < 0.15:
		score += 25
	case volatility < 0.25:
		score += 15
	case volatility < PortfolioVolHighCutoff:
		score += 5
	default:
		score += 0
	}

	switch {
	case sharpe < 0:
		score += 0
	case sharpe < 0.5:
		score += 10
	case sharpe < 1:
		score += 15
	default:
		score += 20
	}

	switch {
	case hhi > 0.5:
		score += 0
	case hhi > HHIMediumCutoff:
		score += 5
	case hhi > HHILowCutoff:
		score += 15
	default:
		score += 25
	}

	return clamp(score, 0, 100)
}

// recommendations emits every applicable rule; the rules are independent,
// not mutually exclusive.
func recommendations(a *PortfolioAssessment) []string {
	var recs []string

	if a.Volatility >= PortfolioVolHighCutoff {
		recs = append(recs, "portfolio volatility is high, consider adding defensive stocks")
	}
	if a.HHI >= HHIMediumCutoff {
		recs = append(recs, fmt.Sprintf("concentration index %.2f is elevated, diversify across more positions", a.HHI))
	}
	if a.MaxSectorWeight > SectorMediumCutoff {
		recs = append(recs, fmt.Sprintf("%.0f%% of value sits in one sector, rebalance sector exposure", a.MaxSectorWeight*100))
	}
	if a.ReturnPct < 0 {
		recs = append(recs, "portfolio return is negative, review underperforming positions")
	}
	if a.Beta > PortfolioBetaHighCutoff {
		recs = append(recs, fmt.Sprintf("portfolio beta %.2f is aggressive, consider lower-beta holdings", a.Beta))
	}

	if len(recs) == 0 {
		recs = append(recs, "portfolio risk profile looks balanced, maintain current allocation")
	}
	return recs
}

// Percentage-scale concentration cutoffs used by the standalone report.
const (
	ConcentrationPctLowCutoff    = 1500.0
	ConcentrationPctMediumCutoff = 2500.0
)

// ConcentrationResult is the standalone concentration report. Its HHI uses
// percentage weights (0-10000 scale) with the classic antitrust cutoffs,
// unlike the fractional scale in AssessPortfolio.
type ConcentrationResult struct {
	HHI     float64            `json:"hhi"`
	Level   Level              `json:"level"`
	Weights map[string]float64 `json:"weights"`
}

// ConcentrationReport computes the percentage-scale HHI over position value
// weights. Returns nil for an empty or zero-value basket.
func ConcentrationReport(positions []entity.Position) *ConcentrationResult {
	if len(positions) == 0 {
		return nil
	}

	var totalValue float64
	for _, p := range positions {
		totalValue += p.MarketValue()
	}
	if totalValue == 0 {
		return nil
	}

	out := &ConcentrationResult{Weights: map[string]float64{}}
	for _, p := range positions {
		weightPct := p.MarketValue() / totalValue * 100
		out.Weights[p.Symbol] += weightPct
	}
	for _, w := range out.Weights {
		out.HHI += w * w
	}

	switch {
	case out.HHI < ConcentrationPctLowCutoff:
		out.Level = LevelLow
	case out.HHI < ConcentrationPctMediumCutoff:
		out.Level = LevelMedium
	default:
		out.Level = LevelHigh
	}
	return out
}

package analysis

import (
	"fmt"
	"math"
)

// Risk scoring thresholds. Each sub-analysis keeps its own table.
const (
	VolatilityRiskMinPoints = 30
	AnnualizedVolLowPct     = 20.0
	AnnualizedVolMediumPct  = 40.0
	TradingDaysPerYear      = 252

	VolumeRiskMinPoints    = 20
	VolumeRiskHealthyRatio = 1.5
	VolumeRiskThinRatio    = 0.8
	VolumeVolLowPct        = 50.0
	VolumeVolMediumPct     = 100.0

	PriceRiskMinPoints    = 30
	PricePositionHighPct  = 80.0
	PricePositionLowPct   = 20.0
	PriceCrashChangePct   = -20.0
	PriceRunupChangePct   = 50.0
	PriceRiskLowCutoff    = 40.0
	PriceRiskMediumCutoff = 70.0

	BetaHighCutoff   = 1.5
	BetaMediumCutoff = 1.0

	RiskHighCutoff   = 60.0
	RiskMediumCutoff = 35.0
)

// Risk component scores per bucket.
const (
	riskScoreLow    = 20.0
	riskScoreMedium = 50.0
	riskScoreHigh   = 80.0
)

// VolatilityStats carries the reporting-only figures computed alongside the
// volatility risk component.
type VolatilityStats struct {
	DailyPct      float64 `json:"daily_pct"`
	AnnualizedPct float64 `json:"annualized_pct"`
	VaR95         float64 `json:"var_95"`
	VaR99         float64 `json:"var_99"`
	MaxDrawdown   float64 `json:"max_drawdown"`
}

// RiskAssessment is the blended risk verdict. Components that could not be
// computed are absent from Components and excluded from the mean.
type RiskAssessment struct {
	Level      Level            `json:"level"`
	Score      float64          `json:"score"`
	Advice     string           `json:"advice"`
	Components []ScoreComponent `json:"components"`
	Volatility *VolatilityStats `json:"volatility,omitempty"`
}

// AssessRisk runs the four risk sub-analyses and averages whichever produced
// a component. assumedBeta is a placeholder input until a market series is
// wired in; zero means "not provided" and defaults to 1.0.
func AssessRisk(points []PricePoint, assumedBeta float64) RiskAssessment {
	assessment := RiskAssessment{}

	if c, stats := VolatilityRisk(points); c != nil {
		assessment.Components = append(assessment.Components, *c)
		assessment.Volatility = stats
	}
	if c := VolumeRisk(points); c != nil {
		assessment.Components = append(assessment.Components, *c)
	}
	if c := PriceRisk(points); c != nil {
		assessment.Components = append(assessment.Components, *c)
	}
	assessment.Components = append(assessment.Components, MarketRisk(assumedBeta))

	var sum float64
	for _, c := range assessment.Components {
		sum += c.Score
	}
	if len(assessment.Components) > 0 {
		assessment.Score = sum / float64(len(assessment.Components))
	}

	assessment.Level, assessment.Advice = bucketRiskScore(assessment.Score)
	return assessment
}

func bucketRiskScore(score float64) (Level, string) {
	switch {
	case score >= RiskHighCutoff:
		return LevelHigh, "risk warning"
	case score >= RiskMediumCutoff:
		return LevelMedium, "monitor"
	default:
		return LevelLow, "normal"
	}
}

// VolatilityRisk scores the annualized daily-return volatility and reports
// VaR and max drawdown alongside. Returns nil below the minimum window.
func VolatilityRisk(points []PricePoint) (*ScoreComponent, *VolatilityStats) {
	if len(points) < VolatilityRiskMinPoints {
		return nil, nil
	}

	returns := dailyReturns(points)
	daily := stdDev(returns) * 100
	annualized := daily * math.Sqrt(TradingDaysPerYear)

	stats := &VolatilityStats{
		DailyPct:      daily,
		AnnualizedPct: annualized,
		VaR95:         percentile(returns, 5),
		VaR99:         percentile(returns, 1),
		MaxDrawdown:   maxDrawdown(returns),
	}

	c := ScoreComponent{Name: "volatility"}
	switch {
	case annualized < AnnualizedVolLowPct:
		c.Level = LevelLow
		c.Score = riskScoreLow
		c.Reasons = append(c.Reasons, fmt.Sprintf("annualized volatility %.1f%% is low", annualized))
	case annualized < AnnualizedVolMediumPct:
		c.Level = LevelMedium
		c.Score = riskScoreMedium
		c.Reasons = append(c.Reasons, fmt.Sprintf("annualized volatility %.1f%% is moderate", annualized))
	default:
		c.Level = LevelHigh
		c.Score = riskScoreHigh
		c.Reasons = append(c.Reasons, fmt.Sprintf("annualized volatility %.1f%% is high", annualized))
	}
	return &c, stats
}

// maxDrawdown is the deepest peak-to-trough decline of the cumulative
// return path, as a negative fraction.
func maxDrawdown(returns []float64) float64 {
	cumulative := 1.0
	peak := 1.0
	worst := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if dd := (cumulative - peak) / peak; dd < worst {
			worst = dd
		}
	}
	return worst
}

// VolumeRisk scores how reliable current liquidity looks: a healthy ratio
// with steady volumes is low risk, thin or erratic volume is high risk.
// Returns nil below the minimum window.
func VolumeRisk(points []PricePoint) *ScoreComponent {
	if len(points) < VolumeRiskMinPoints {
		return nil
	}

	volumes := make([]float64, len(points))
	for i, p := range points {
		volumes[i] = float64(p.Volume)
	}
	avg := mean(volumes)

	var ratio, volVolatility float64
	if avg != 0 {
		ratio = volumes[len(volumes)-1] / avg
		volVolatility = stdDev(volumes) / avg * 100
	}

	c := ScoreComponent{Name: "volume"}
	switch {
	case ratio > VolumeRiskHealthyRatio && volVolatility < VolumeVolLowPct:
		c.Level = LevelLow
		c.Score = riskScoreLow
		c.Reasons = append(c.Reasons, "strong and steady volume")
	case ratio > VolumeRiskThinRatio && volVolatility < VolumeVolMediumPct:
		c.Level = LevelMedium
		c.Score = riskScoreMedium
		c.Reasons = append(c.Reasons, "average volume")
	default:
		c.Level = LevelHigh
		c.Score = riskScoreHigh
		c.Reasons = append(c.Reasons, "thin or erratic volume")
	}
	return &c
}

// PriceRisk scores where the price sits inside its window range plus how
// violently it got there. Returns nil below the minimum window.
func PriceRisk(points []PricePoint) *ScoreComponent {
	if len(points) < PriceRiskMinPoints {
		return nil
	}

	high := math.Inf(-1)
	low := math.Inf(1)
	for _, p := range points {
		if p.High > high {
			high = p.High
		}
		if p.Low < low {
			low = p.Low
		}
	}

	price := points[len(points)-1].Close
	position := 50.0
	if high != low {
		position = (price - low) / (high - low) * 100
	}

	c := ScoreComponent{Name: "price"}
	switch {
	case position > PricePositionHighPct:
		c.Score = 70
		c.Reasons = append(c.Reasons, fmt.Sprintf("price at %.0f%% of range: OVERBOUGHT", position))
	case position < PricePositionLowPct:
		c.Score = 30
		c.Reasons = append(c.Reasons, fmt.Sprintf("price at %.0f%% of range: OVERSOLD", position))
	default:
		c.Score = 50
		c.Reasons = append(c.Reasons, fmt.Sprintf("price at %.0f%% of range: NORMAL", position))
	}

	first := points[0].Close
	var totalChange float64
	if first != 0 {
		totalChange = (price - first) / first * 100
	}
	switch {
	case totalChange < PriceCrashChangePct:
		c.Score += 20
		c.Reasons = append(c.Reasons, fmt.Sprintf("total change %.1f%%: HIGH change risk", totalChange))
	case totalChange > PriceRunupChangePct:
		c.Score += 10
		c.Reasons = append(c.Reasons, fmt.Sprintf("total change %.1f%%: MEDIUM change risk", totalChange))
	default:
		c.Reasons = append(c.Reasons, fmt.Sprintf("total change %.1f%%: LOW change risk", totalChange))
	}

	switch {
	case c.Score < PriceRiskLowCutoff:
		c.Level = LevelLow
	case c.Score < PriceRiskMediumCutoff:
		c.Level = LevelMedium
	default:
		c.Level = LevelHigh
	}
	return &c
}

// MarketRisk scores the assumed beta. Beta is a placeholder input, not a
// computed market correlation; zero defaults to 1.0.
func MarketRisk(assumedBeta float64) ScoreComponent {
	if assumedBeta == 0 {
		assumedBeta = 1.0
	}

	c := ScoreComponent{Name: "market"}
	switch {
	case assumedBeta > BetaHighCutoff:
		c.Level = LevelHigh
		c.Score = 70
		c.Reasons = append(c.Reasons, fmt.Sprintf("beta %.2f amplifies market swings", assumedBeta))
	case assumedBeta > BetaMediumCutoff:
		c.Level = LevelMedium
		c.Score = 40
		c.Reasons = append(c.Reasons, fmt.Sprintf("beta %.2f moves with the market", assumedBeta))
	default:
		c.Level = LevelLow
		c.Score = 20
		c.Reasons = append(c.Reasons, fmt.Sprintf("beta %.2f dampens market swings", assumedBeta))
	}
	return c
}

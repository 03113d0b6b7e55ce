package analysis

// Opportunity blending modifiers and cutoffs.
const (
	SentimentPositiveCutoff = 0.3
	SentimentNegativeCutoff = -0.3

	sentimentBonus   = 10.0
	sentimentPenalty = 10.0

	trendStrongBonus = 10.0
	trendWeakBonus   = 5.0

	riskHighPenalty = 15.0
	riskLowBonus    = 10.0

	OpportunityHighCutoff   = 65.0
	OpportunityMediumCutoff = 40.0
)

// OpportunityAssessment is the blended buy/sell/hold verdict for a symbol.
type OpportunityAssessment struct {
	Level          Level            `json:"level"`
	Score          float64          `json:"score"`
	Recommendation string           `json:"recommendation"`
	Confidence     float64          `json:"confidence"`
	Signals        TechnicalSignals `json:"signals"`
	Reasons        []string         `json:"reasons"`
}

// AssessOpportunity blends technical signals with the trend recommendation,
// news sentiment and the risk verdict. The technical tally fixes the
// recommendation and confidence; sentiment, trend and risk only shift the
// combined score before it is bucketed.
func AssessOpportunity(snapshot IndicatorSnapshot, trendRec *Recommendation, sentiment *SentimentSummary, risk *RiskAssessment) OpportunityAssessment {
	signals := BuildSignals(snapshot)
	technical := RecommendTechnical(signals)

	out := OpportunityAssessment{
		Recommendation: technical.Label,
		Confidence:     technical.Confidence,
		Signals:        signals,
		Reasons:        technical.Reasons,
	}

	score := 50.0
	switch technical.Label {
	case TechBuy:
		score = technical.Confidence
	case TechSell:
		score = 100 - technical.Confidence
	}

	if trendRec != nil {
		switch trendRec.Label {
		case TrendStrongBuy:
			score += trendStrongBonus
			out.Reasons = append(out.Reasons, "strong buy trend")
		case TrendWeakBuy:
			score += trendWeakBonus
			out.Reasons = append(out.Reasons, "weak buy trend")
		case TrendStrongSell:
			score -= trendStrongBonus
			out.Reasons = append(out.Reasons, "strong sell trend")
		case TrendWeakSell:
			score -= trendWeakBonus
			out.Reasons = append(out.Reasons, "weak sell trend")
		}
	}

	if sentiment != nil && sentiment.TotalNews > 0 {
		if sentiment.Score > SentimentPositiveCutoff {
			score += sentimentBonus
			out.Reasons = append(out.Reasons, "positive news sentiment")
		} else if sentiment.Score < SentimentNegativeCutoff {
			score -= sentimentPenalty
			out.Reasons = append(out.Reasons, "negative news sentiment")
		}
	}

	if risk != nil {
		switch risk.Level {
		case LevelHigh:
			score -= riskHighPenalty
			out.Reasons = append(out.Reasons, "high risk profile")
		case LevelLow:
			score += riskLowBonus
			out.Reasons = append(out.Reasons, "low risk profile")
		}
	}

	out.Score = clamp(score, 0, 100)
	switch {
	case out.Score >= OpportunityHighCutoff:
		out.Level = LevelHigh
	case out.Score >= OpportunityMediumCutoff:
		out.Level = LevelMedium
	default:
		out.Level = LevelLow
	}
	return out
}

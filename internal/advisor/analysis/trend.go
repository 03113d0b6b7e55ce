package analysis

// Trend scoring thresholds. Direction is decided by the total change over the
// window, momentum by the change over the trailing momentum window.
const (
	TrendMinPoints      = 10
	TrendMomentumWindow = 10

	TrendRisingPct  = 5.0
	TrendFallingPct = -5.0

	TrendStrongMomentum = 1.0

	VolumeHighRatio   = 1.5
	VolumeLowRatio    = 0.5
	VolumeGoodQuality = 0.6

	VolatilityHighPct = 5.0
	VolatilityLowPct  = 2.0
)

// Trend recommendation labels.
const (
	TrendStrongBuy  = "STRONG BUY"
	TrendWeakBuy    = "WEAK BUY"
	TrendStrongSell = "STRONG SELL"
	TrendWeakSell   = "WEAK SELL"
	TrendHold       = "HOLD"
)

// Trend directions.
const (
	DirectionRising  = "RISING"
	DirectionFalling = "FALLING"
	DirectionFlat    = "FLAT"
)

// TrendAnalysis describes price direction and movement quality over the
// window.
type TrendAnalysis struct {
	Direction      string  `json:"direction"`
	TotalChangePct float64 `json:"total_change_pct"`
	MomentumPct    float64 `json:"momentum_pct"`
	Volatility     float64 `json:"volatility"`
	Strength       float64 `json:"strength"`
}

// VolumeAnalysis describes trading volume behaviour over the window.
type VolumeAnalysis struct {
	Ratio   float64 `json:"ratio"`
	Quality float64 `json:"quality"`
}

// AnalyzeTrend computes direction, momentum, volatility and strength for a
// series. Returns nil below the minimum window.
func AnalyzeTrend(points []PricePoint) *TrendAnalysis {
	if len(points) < TrendMinPoints {
		return nil
	}

	first := points[0].Close
	last := points[len(points)-1].Close

	var totalChange float64
	if first != 0 {
		totalChange = (last - first) / first * 100
	}

	direction := DirectionFlat
	if totalChange > TrendRisingPct {
		direction = DirectionRising
	} else if totalChange < TrendFallingPct {
		direction = DirectionFalling
	}

	momentumWindow := lastN(points, TrendMomentumWindow)
	momentumFirst := momentumWindow[0].Close
	var momentum float64
	if momentumFirst != 0 {
		momentum = (last - momentumFirst) / momentumFirst * 100
	}

	prices := closes(points)
	m := mean(prices)
	var volatility float64
	if m != 0 {
		volatility = stdDev(prices) / m * 100
	}

	strength := totalChange / 10
	if strength < 0 {
		strength = -strength
	}

	return &TrendAnalysis{
		Direction:      direction,
		TotalChangePct: totalChange,
		MomentumPct:    momentum,
		Volatility:     volatility,
		Strength:       strength,
	}
}

// AnalyzeVolume computes the latest-to-average volume ratio and the volume
// quality. Quality counts only days where volume rose: up-price days over
// all rising-volume days. Days where volume fell are left out of the
// denominator entirely. Returns nil below the minimum window.
func AnalyzeVolume(points []PricePoint) *VolumeAnalysis {
	if len(points) < TrendMinPoints {
		return nil
	}

	var sum float64
	for _, p := range points {
		sum += float64(p.Volume)
	}
	avg := sum / float64(len(points))

	var ratio float64
	if avg != 0 {
		ratio = float64(points[len(points)-1].Volume) / avg
	}

	var upWithVolume, downWithVolume int
	for i := 1; i < len(points); i++ {
		volumeUp := points[i].Volume > points[i-1].Volume
		if !volumeUp {
			continue
		}
		if points[i].Close > points[i-1].Close {
			upWithVolume++
		} else if points[i].Close < points[i-1].Close {
			downWithVolume++
		}
	}

	var quality float64
	if total := upWithVolume + downWithVolume; total > 0 {
		quality = float64(upWithVolume) / float64(total)
	}

	return &VolumeAnalysis{Ratio: ratio, Quality: quality}
}

// RecommendTrend blends the trend and volume analyses into a verdict. The
// label is fixed by the direction/momentum branch; later adjustments only
// move the confidence, which is clamped to [0,100].
func RecommendTrend(trend *TrendAnalysis, volume *VolumeAnalysis) *Recommendation {
	if trend == nil {
		return nil
	}

	rec := Recommendation{Confidence: 0}
	switch {
	case trend.Direction == DirectionRising && trend.MomentumPct > TrendStrongMomentum:
		rec.Label = TrendStrongBuy
		rec.Confidence += 30
		rec.Reasons = append(rec.Reasons, "rising trend with strong momentum")
	case trend.Direction == DirectionRising:
		rec.Label = TrendWeakBuy
		rec.Confidence += 15
		rec.Reasons = append(rec.Reasons, "rising trend")
	case trend.Direction == DirectionFalling && trend.MomentumPct < -TrendStrongMomentum:
		rec.Label = TrendStrongSell
		rec.Confidence += 30
		rec.Reasons = append(rec.Reasons, "falling trend with strong momentum")
	case trend.Direction == DirectionFalling:
		rec.Label = TrendWeakSell
		rec.Confidence += 15
		rec.Reasons = append(rec.Reasons, "falling trend")
	default:
		rec.Label = TrendHold
		rec.Confidence += 5
		rec.Reasons = append(rec.Reasons, "flat trend")
	}

	if volume != nil {
		if volume.Ratio > VolumeHighRatio {
			rec.Confidence += 20
			rec.Reasons = append(rec.Reasons, "volume well above average")
		} else if volume.Ratio < VolumeLowRatio {
			rec.Confidence -= 10
			rec.Reasons = append(rec.Reasons, "volume well below average")
		}
		if volume.Quality > VolumeGoodQuality {
			rec.Confidence += 15
			rec.Reasons = append(rec.Reasons, "volume confirms price moves")
		}
	}

	if trend.Volatility > VolatilityHighPct {
		rec.Confidence -= 10
		rec.Reasons = append(rec.Reasons, "high volatility")
	} else if trend.Volatility < VolatilityLowPct {
		rec.Confidence += 10
		rec.Reasons = append(rec.Reasons, "low volatility")
	}

	rec.Confidence = clamp(rec.Confidence, 0, 100)
	return &rec
}

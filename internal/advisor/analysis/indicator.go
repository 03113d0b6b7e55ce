package analysis

import "math"

// Default indicator parameters and signal thresholds. Kept next to the
// functions that read them.
const (
	RSIPeriod     = 14
	RSIOverbought = 70.0
	RSIOversold   = 30.0
	RSIExtremeTop = 80.0
	RSIExtremeBot = 20.0

	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9

	BollingerPeriod = 20
	BollingerK      = 2.0

	StochasticKPeriod    = 14
	StochasticDPeriod    = 3
	StochasticOverbought = 80.0
	StochasticOversold   = 20.0
)

// MACDResult holds the MACD line, its signal line and their difference.
type MACDResult struct {
	Line      float64 `json:"line"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerResult holds the band levels plus derived bandwidth and the
// position of the latest close within the bands. Position is not clamped
// and may leave [0,1] when the price breaches a band.
type BollingerResult struct {
	Upper     float64 `json:"upper"`
	Middle    float64 `json:"middle"`
	Lower     float64 `json:"lower"`
	Bandwidth float64 `json:"bandwidth"`
	Position  float64 `json:"position"`
}

// StochasticResult holds the %K and %D oscillator values.
type StochasticResult struct {
	K float64 `json:"k"`
	D float64 `json:"d"`
}

// IndicatorSnapshot bundles all indicators for one series. Each field is nil
// when its minimum window is unmet.
type IndicatorSnapshot struct {
	RSI        *float64          `json:"rsi,omitempty"`
	MACD       *MACDResult       `json:"macd,omitempty"`
	Bollinger  *BollingerResult  `json:"bollinger,omitempty"`
	Stochastic *StochasticResult `json:"stochastic,omitempty"`
}

// Indicators computes the full snapshot with default parameters.
func Indicators(points []PricePoint) IndicatorSnapshot {
	return IndicatorSnapshot{
		RSI:        RSI(points, RSIPeriod),
		MACD:       MACD(points, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod),
		Bollinger:  Bollinger(points, BollingerPeriod, BollingerK),
		Stochastic: Stochastic(points, StochasticKPeriod, StochasticDPeriod),
	}
}

// RSI computes the Relative Strength Index over the trailing window. Returns
// nil when fewer than period+1 points are available. A series with neither
// gains nor losses yields the neutral value 50.
func RSI(points []PricePoint, period int) *float64 {
	if len(points) < period+1 {
		return nil
	}

	window := lastN(points, period+1)
	var gains, losses float64
	for i := 1; i < len(window); i++ {
		change := window[i].Close - window[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	var rsi float64
	switch {
	case avgGain == 0 && avgLoss == 0:
		rsi = 50
	case avgLoss == 0:
		rsi = 100
	default:
		rs := avgGain / avgLoss
		rsi = 100 - 100/(1+rs)
	}
	return &rsi
}

// MACD computes the MACD line (fast EMA - slow EMA), its signal line (EMA of
// the MACD history) and the histogram. Returns nil when fewer than
// slow+signal points are available.
func MACD(points []PricePoint, fastPeriod, slowPeriod, signalPeriod int) *MACDResult {
	prices := closes(points)
	if len(prices) < slowPeriod+signalPeriod {
		return nil
	}

	fast := emaSeries(prices, fastPeriod)
	slow := emaSeries(prices, slowPeriod)

	// MACD history starts where the slow EMA becomes defined.
	macdHistory := make([]float64, 0, len(prices)-slowPeriod+1)
	for i := slowPeriod - 1; i < len(prices); i++ {
		macdHistory = append(macdHistory, fast[i]-slow[i])
	}

	signal := emaSeries(macdHistory, signalPeriod)

	line := macdHistory[len(macdHistory)-1]
	sig := signal[len(signal)-1]
	return &MACDResult{
		Line:      line,
		Signal:    sig,
		Histogram: line - sig,
	}
}

// emaSeries computes the exponential moving average at every index. Indexes
// before period-1 carry the running simple average as a seed.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	if period < 1 {
		period = 1
	}

	multiplier := 2.0 / (float64(period) + 1)
	var sum float64
	for i, v := range values {
		if i < period {
			sum += v
			out[i] = sum / float64(i+1)
			continue
		}
		out[i] = (v-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// Bollinger computes the bands over the trailing window. Returns nil when
// fewer than period points are available.
func Bollinger(points []PricePoint, period int, k float64) *BollingerResult {
	if len(points) < period {
		return nil
	}

	window := closes(lastN(points, period))
	middle := mean(window)
	sd := stdDev(window)

	upper := middle + k*sd
	lower := middle - k*sd

	var bandwidth float64
	if middle != 0 {
		bandwidth = (upper - lower) / middle
	}

	price := points[len(points)-1].Close
	position := 0.5
	if upper != lower {
		position = (price - lower) / (upper - lower)
	}

	return &BollingerResult{
		Upper:     upper,
		Middle:    middle,
		Lower:     lower,
		Bandwidth: bandwidth,
		Position:  position,
	}
}

// Stochastic computes %K over kPeriod and %D as the mean of the trailing
// dPeriod %K values. Returns nil when fewer than kPeriod+dPeriod points are
// available.
func Stochastic(points []PricePoint, kPeriod, dPeriod int) *StochasticResult {
	if len(points) < kPeriod+dPeriod {
		return nil
	}

	kValues := make([]float64, 0, dPeriod)
	for i := dPeriod - 1; i >= 0; i-- {
		end := len(points) - i
		kValues = append(kValues, stochasticK(points[:end], kPeriod))
	}

	return &StochasticResult{
		K: kValues[len(kValues)-1],
		D: mean(kValues),
	}
}

func stochasticK(points []PricePoint, kPeriod int) float64 {
	window := lastN(points, kPeriod)
	highest := math.Inf(-1)
	lowest := math.Inf(1)
	for _, p := range window {
		if p.High > highest {
			highest = p.High
		}
		if p.Low < lowest {
			lowest = p.Low
		}
	}
	if highest == lowest {
		return 50
	}
	latest := points[len(points)-1].Close
	return 100 * (latest - lowest) / (highest - lowest)
}

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatSeries builds n points with identical OHLC prices.
func flatSeries(n int, price float64, volume int64) []PricePoint {
	points := make([]PricePoint, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		points[i] = PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: volume,
		}
	}
	return points
}

// trendingSeries builds n points whose close moves by step each day.
func trendingSeries(n int, start, step float64, volume int64) []PricePoint {
	points := make([]PricePoint, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	price := start
	for i := range points {
		points[i] = PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   price,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: volume,
		}
		price += step
	}
	return points
}

func TestIndicatorsInsufficientData(t *testing.T) {
	snapshot := Indicators(flatSeries(5, 100, 1000))

	assert.Nil(t, snapshot.RSI)
	assert.Nil(t, snapshot.MACD)
	assert.Nil(t, snapshot.Bollinger)
	assert.Nil(t, snapshot.Stochastic)
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name     string
		points   []PricePoint
		expected float64
	}{
		{
			name:     "all gains saturates at 100",
			points:   trendingSeries(20, 100, 1, 1000),
			expected: 100,
		},
		{
			name:     "flat series is neutral",
			points:   flatSeries(20, 100, 1000),
			expected: 50,
		},
		{
			name:     "all losses reaches 0",
			points:   trendingSeries(20, 100, -1, 1000),
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rsi := RSI(tc.points, RSIPeriod)
			require.NotNil(t, rsi)
			assert.InDelta(t, tc.expected, *rsi, 1e-9)
			assert.GreaterOrEqual(t, *rsi, 0.0)
			assert.LessOrEqual(t, *rsi, 100.0)
		})
	}
}

func TestRSIMinimumWindow(t *testing.T) {
	assert.Nil(t, RSI(flatSeries(RSIPeriod, 100, 1000), RSIPeriod))
	assert.NotNil(t, RSI(flatSeries(RSIPeriod+1, 100, 1000), RSIPeriod))
}

func TestMACDMinimumWindow(t *testing.T) {
	minPoints := MACDSlowPeriod + MACDSignalPeriod
	assert.Nil(t, MACD(trendingSeries(minPoints-1, 100, 1, 1000), MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod))
	assert.NotNil(t, MACD(trendingSeries(minPoints, 100, 1, 1000), MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod))
}

func TestMACDUptrendIsPositive(t *testing.T) {
	macd := MACD(trendingSeries(60, 100, 2, 1000), MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	require.NotNil(t, macd)
	assert.Positive(t, macd.Line, "fast EMA should sit above slow EMA in an uptrend")
	assert.InDelta(t, macd.Line-macd.Signal, macd.Histogram, 1e-9)
}

func TestBollinger(t *testing.T) {
	points := trendingSeries(40, 100, 1, 1000)
	bb := Bollinger(points, BollingerPeriod, BollingerK)
	require.NotNil(t, bb)

	assert.Greater(t, bb.Upper, bb.Middle)
	assert.Less(t, bb.Lower, bb.Middle)
	assert.Positive(t, bb.Bandwidth)
	// A steady uptrend closes near or above the upper band; position is not
	// clamped to [0,1].
	assert.Greater(t, bb.Position, 0.5)
}

func TestBollingerFlatSeries(t *testing.T) {
	bb := Bollinger(flatSeries(30, 100, 1000), BollingerPeriod, BollingerK)
	require.NotNil(t, bb)

	assert.InDelta(t, 100, bb.Upper, 1e-9)
	assert.InDelta(t, 100, bb.Lower, 1e-9)
	assert.Zero(t, bb.Bandwidth)
	assert.InDelta(t, 0.5, bb.Position, 1e-9, "degenerate bands default to mid position")
}

func TestStochastic(t *testing.T) {
	st := Stochastic(trendingSeries(40, 100, 1, 1000), StochasticKPeriod, StochasticDPeriod)
	require.NotNil(t, st)

	assert.Greater(t, st.K, 50.0, "close at the top of the range")
	assert.GreaterOrEqual(t, st.K, 0.0)
	assert.LessOrEqual(t, st.K, 100.0)
	assert.GreaterOrEqual(t, st.D, 0.0)
	assert.LessOrEqual(t, st.D, 100.0)
}

func TestStochasticFlatRangeIsNeutral(t *testing.T) {
	st := Stochastic(flatSeries(40, 100, 1000), StochasticKPeriod, StochasticDPeriod)
	require.NotNil(t, st)

	assert.InDelta(t, 50, st.K, 1e-9)
	assert.InDelta(t, 50, st.D, 1e-9)
}

func TestBuildSignals(t *testing.T) {
	rsiHigh := 85.0
	rsiLow := 15.0

	tests := []struct {
		name      string
		snapshot  IndicatorSnapshot
		wantBuys  int
		wantSells int
	}{
		{
			name:     "empty snapshot yields no signals",
			snapshot: IndicatorSnapshot{},
		},
		{
			name: "overbought everything",
			snapshot: IndicatorSnapshot{
				RSI:        &rsiHigh,
				MACD:       &MACDResult{Line: 1, Signal: 2, Histogram: -1},
				Bollinger:  &BollingerResult{Position: 1.2},
				Stochastic: &StochasticResult{K: 90, D: 85},
			},
			wantSells: 4,
		},
		{
			name: "oversold everything",
			snapshot: IndicatorSnapshot{
				RSI:        &rsiLow,
				MACD:       &MACDResult{Line: 2, Signal: 1, Histogram: 1},
				Bollinger:  &BollingerResult{Position: -0.1},
				Stochastic: &StochasticResult{K: 10, D: 15},
			},
			wantBuys: 4,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			signals := BuildSignals(tc.snapshot)
			assert.Len(t, signals.BuySignals, tc.wantBuys)
			assert.Len(t, signals.SellSignals, tc.wantSells)
		})
	}
}

func TestRecommendTechnical(t *testing.T) {
	tests := []struct {
		name           string
		signals        TechnicalSignals
		wantLabel      string
		wantConfidence float64
	}{
		{
			name:           "no signals waits at 50",
			signals:        TechnicalSignals{},
			wantLabel:      TechWait,
			wantConfidence: 50,
		},
		{
			name: "tie waits at 50",
			signals: TechnicalSignals{
				BuySignals:  []string{"a"},
				SellSignals: []string{"b"},
			},
			wantLabel:      TechWait,
			wantConfidence: 50,
		},
		{
			name: "buy majority",
			signals: TechnicalSignals{
				BuySignals:  []string{"a", "b", "c"},
				SellSignals: []string{"d"},
			},
			wantLabel:      TechBuy,
			wantConfidence: 75,
		},
		{
			name: "sell majority",
			signals: TechnicalSignals{
				BuySignals:  []string{"a"},
				SellSignals: []string{"b", "c", "d"},
			},
			wantLabel:      TechSell,
			wantConfidence: 75,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := RecommendTechnical(tc.signals)
			assert.Equal(t, tc.wantLabel, rec.Label)
			assert.InDelta(t, tc.wantConfidence, rec.Confidence, 1e-9)
		})
	}
}

package analysis

import "fmt"

// Technical recommendation labels.
const (
	TechBuy  = "TECH BUY"
	TechSell = "TECH SELL"
	TechWait = "WAIT"
)

// TechnicalSignals lists the buy and sell triggers derived from one
// indicator snapshot. Each indicator is classified independently.
type TechnicalSignals struct {
	BuySignals  []string `json:"buy_signals"`
	SellSignals []string `json:"sell_signals"`
}

// BuildSignals classifies each indicator in the snapshot against its fixed
// thresholds. Nil indicators contribute nothing.
func BuildSignals(snapshot IndicatorSnapshot) TechnicalSignals {
	var s TechnicalSignals

	if rsi := snapshot.RSI; rsi != nil {
		switch {
		case *rsi > RSIExtremeTop:
			s.SellSignals = append(s.SellSignals, fmt.Sprintf("RSI %.1f strongly overbought", *rsi))
		case *rsi > RSIOverbought:
			s.SellSignals = append(s.SellSignals, fmt.Sprintf("RSI %.1f overbought", *rsi))
		case *rsi < RSIExtremeBot:
			s.BuySignals = append(s.BuySignals, fmt.Sprintf("RSI %.1f strongly oversold", *rsi))
		case *rsi < RSIOversold:
			s.BuySignals = append(s.BuySignals, fmt.Sprintf("RSI %.1f oversold", *rsi))
		}
	}

	if macd := snapshot.MACD; macd != nil {
		if macd.Histogram > 0 {
			s.BuySignals = append(s.BuySignals, "MACD above signal line")
		} else if macd.Histogram < 0 {
			s.SellSignals = append(s.SellSignals, "MACD below signal line")
		}
	}

	if bb := snapshot.Bollinger; bb != nil {
		if bb.Position > 1 {
			s.SellSignals = append(s.SellSignals, "price above upper Bollinger band")
		} else if bb.Position < 0 {
			s.BuySignals = append(s.BuySignals, "price below lower Bollinger band")
		}
	}

	if st := snapshot.Stochastic; st != nil {
		if st.K > StochasticOverbought {
			s.SellSignals = append(s.SellSignals, fmt.Sprintf("stochastic %%K %.1f overbought", st.K))
		} else if st.K < StochasticOversold {
			s.BuySignals = append(s.BuySignals, fmt.Sprintf("stochastic %%K %.1f oversold", st.K))
		}
	}

	return s
}

// RecommendTechnical tallies the signal lists into a verdict. Confidence is
// the winning share of all signals, or 50 when tied or empty.
func RecommendTechnical(signals TechnicalSignals) Recommendation {
	buy := len(signals.BuySignals)
	sell := len(signals.SellSignals)
	total := buy + sell

	rec := Recommendation{Label: TechWait, Confidence: 50}
	rec.Reasons = append(rec.Reasons, signals.BuySignals...)
	rec.Reasons = append(rec.Reasons, signals.SellSignals...)

	if total == 0 || buy == sell {
		return rec
	}

	if buy > sell {
		rec.Label = TechBuy
		rec.Confidence = float64(buy) / float64(total) * 100
	} else {
		rec.Label = TechSell
		rec.Confidence = float64(sell) / float64(total) * 100
	}
	return rec
}

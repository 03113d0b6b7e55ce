package dto

import "golang-stock-advisor/internal/advisor/analysis"

// GetStockDataParam selects the series to fetch for a symbol.
type GetStockDataParam struct {
	Symbol   string `json:"symbol"`
	Range    string `json:"range"`
	Interval string `json:"interval"`
}

// StockData is a fetched OHLCV series plus the latest market price.
type StockData struct {
	Symbol      string                `json:"symbol"`
	MarketPrice float64               `json:"market_price"`
	OHLCV       []analysis.PricePoint `json:"ohlcv"`
}

// PriceSnapshot maps symbol to its latest observed price. Read-only during
// an alert sweep.
type PriceSnapshot map[string]float64

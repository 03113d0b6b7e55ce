package dto

import "golang-stock-advisor/internal/advisor/analysis"

// AnalyzeStockParam selects the symbol and series shape for an analysis run.
type AnalyzeStockParam struct {
	Symbol   string `json:"symbol"`
	Range    string `json:"range"`
	Interval string `json:"interval"`
}

// StockAnalysisResult is the full analysis breakdown for a symbol. This is
// what gets serialized into the stock_analyses data column and returned by
// the analysis endpoint.
type StockAnalysisResult struct {
	Symbol      string                         `json:"symbol"`
	MarketPrice float64                        `json:"market_price"`
	Indicators  analysis.IndicatorSnapshot     `json:"indicators"`
	Trend       *analysis.TrendAnalysis        `json:"trend,omitempty"`
	Volume      *analysis.VolumeAnalysis       `json:"volume,omitempty"`
	TrendRec    *analysis.Recommendation       `json:"trend_recommendation,omitempty"`
	Sentiment   *analysis.SentimentSummary     `json:"sentiment,omitempty"`
	Risk        analysis.RiskAssessment        `json:"risk"`
	Opportunity analysis.OpportunityAssessment `json:"opportunity"`
}

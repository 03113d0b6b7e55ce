package dto

// CreatePortfolioRequest creates an empty named portfolio for a user.
type CreatePortfolioRequest struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// AddPositionRequest appends a holding to a portfolio.
type AddPositionRequest struct {
	Symbol       string  `json:"symbol"`
	Shares       float64 `json:"shares"`
	AvgCost      float64 `json:"avg_cost"`
	CurrentPrice float64 `json:"current_price"`
	Sector       string  `json:"sector"`
	Beta         float64 `json:"beta"`
	Volatility   float64 `json:"volatility"`
}

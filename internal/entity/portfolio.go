package entity

import "time"

type Portfolio struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null" json:"user_id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Positions []Position `gorm:"foreignKey:PortfolioID" json:"positions"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

// Position is a single holding inside a portfolio. Totals are derived from
// positions, never stored on the portfolio itself.
type Position struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PortfolioID  uint      `gorm:"not null;index" json:"portfolio_id"`
	Symbol       string    `gorm:"type:varchar(20);not null" json:"symbol"`
	Shares       float64   `gorm:"not null" json:"shares"`
	AvgCost      float64   `gorm:"not null" json:"avg_cost"`
	CurrentPrice float64   `json:"current_price"`
	Sector       string    `gorm:"type:varchar(50)" json:"sector"`
	Beta         float64   `json:"beta"`
	Volatility   float64   `json:"volatility"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Position) TableName() string {
	return "positions"
}

// MarketValue is the current value of the position.
func (p Position) MarketValue() float64 {
	return p.Shares * p.CurrentPrice
}

// CostBasis is the total amount paid for the position.
func (p Position) CostBasis() float64 {
	return p.Shares * p.AvgCost
}

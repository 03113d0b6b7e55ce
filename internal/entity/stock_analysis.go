package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StockAnalysis is a persisted analysis verdict for a symbol. The full
// component breakdown is stored as JSON in Data.
type StockAnalysis struct {
	ID               int64          `gorm:"primaryKey" json:"id"`
	Symbol           string         `gorm:"type:varchar(20);not null" json:"symbol"`
	Recommendation   string         `gorm:"type:varchar(20)" json:"recommendation"`
	Confidence       float64        `json:"confidence"`
	RiskLevel        string         `gorm:"type:varchar(10)" json:"risk_level"`
	RiskScore        float64        `json:"risk_score"`
	OpportunityLevel string         `gorm:"type:varchar(10)" json:"opportunity_level"`
	OpportunityScore float64        `json:"opportunity_score"`
	Data             datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at"`
}

func (StockAnalysis) TableName() string {
	return "stock_analyses"
}

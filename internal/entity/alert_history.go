package entity

import "time"

// AlertHistory is an append-only record of a single alert trigger.
type AlertHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AlertID       uint      `gorm:"not null;index" json:"alert_id"`
	Alert         Alert     `gorm:"foreignKey:AlertID" json:"-"`
	Symbol        string    `gorm:"type:varchar(20);not null" json:"symbol"`
	TargetPrice   float64   `gorm:"not null" json:"target_price"`
	ObservedPrice float64   `gorm:"not null" json:"observed_price"`
	TriggeredAt   time.Time `gorm:"not null" json:"triggered_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AlertHistory) TableName() string {
	return "alert_histories"
}

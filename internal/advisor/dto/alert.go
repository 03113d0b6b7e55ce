package dto

import (
	"time"

	"golang-stock-advisor/internal/entity"
)

// CreateAlertRequest is the payload for registering a price alert.
type CreateAlertRequest struct {
	UserID      uint                  `json:"user_id"`
	Symbol      string                `json:"symbol"`
	TargetPrice float64               `json:"target_price"`
	Condition   entity.AlertCondition `json:"condition"`
}

// UpdateAlertRequest patches the mutable alert fields; nil fields are kept.
type UpdateAlertRequest struct {
	TargetPrice *float64               `json:"target_price,omitempty"`
	Condition   *entity.AlertCondition `json:"condition,omitempty"`
	IsActive    *bool                  `json:"is_active,omitempty"`
}

// TriggeredEvent is emitted once per alert the instant its condition is
// first satisfied. Consumed by the notification dispatcher.
type TriggeredEvent struct {
	AlertID       uint                  `json:"alert_id"`
	UserID        uint                  `json:"user_id"`
	Symbol        string                `json:"symbol"`
	TargetPrice   float64               `json:"target_price"`
	ObservedPrice float64               `json:"observed_price"`
	Condition     entity.AlertCondition `json:"condition"`
	TriggeredAt   time.Time             `json:"triggered_at"`
}

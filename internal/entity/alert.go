package entity

import "time"

// AlertCondition is the comparison applied between an observed price and the
// alert's target price.
type AlertCondition string

const (
	AlertConditionAbove  AlertCondition = "ABOVE"
	AlertConditionBelow  AlertCondition = "BELOW"
	AlertConditionEquals AlertCondition = "EQUALS"
)

// EqualsTolerance is the absolute price distance within which an EQUALS
// condition is considered satisfied.
const EqualsTolerance = 0.01

// Alert is a user-owned price alert. It is created active and deactivated
// exactly once, the moment its condition is first satisfied.
type Alert struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
	Symbol      string         `gorm:"type:varchar(20);not null" json:"symbol"`
	TargetPrice float64        `gorm:"not null" json:"target_price"`
	Condition   AlertCondition `gorm:"type:varchar(10);not null" json:"condition"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	TriggeredAt *time.Time     `json:"triggered_at,omitempty"`
}

func (Alert) TableName() string {
	return "alerts"
}

// IsSatisfiedBy reports whether the given price meets the alert condition.
func (a *Alert) IsSatisfiedBy(price float64) bool {
	switch a.Condition {
	case AlertConditionAbove:
		return price >= a.TargetPrice
	case AlertConditionBelow:
		return price <= a.TargetPrice
	case AlertConditionEquals:
		diff := price - a.TargetPrice
		if diff < 0 {
			diff = -diff
		}
		return diff < EqualsTolerance
	default:
		return false
	}
}

// AlertUpdate enumerates the mutable alert fields. Nil fields are left
// untouched by an update.
type AlertUpdate struct {
	TargetPrice *float64        `json:"target_price,omitempty"`
	Condition   *AlertCondition `json:"condition,omitempty"`
	IsActive    *bool           `json:"is_active,omitempty"`
	TriggeredAt *time.Time      `json:"triggered_at,omitempty"`
}

// Fields returns the update as a column map for a partial write.
func (u AlertUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.TargetPrice != nil {
		fields["target_price"] = *u.TargetPrice
	}
	if u.Condition != nil {
		fields["condition"] = *u.Condition
	}
	if u.IsActive != nil {
		fields["is_active"] = *u.IsActive
	}
	if u.TriggeredAt != nil {
		fields["triggered_at"] = *u.TriggeredAt
	}
	return fields
}

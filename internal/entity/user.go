package entity

import "time"

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	TelegramID int64     `gorm:"not null" json:"telegram_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

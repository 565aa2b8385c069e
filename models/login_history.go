package models

import (
	"gorm.io/gorm"
)

// LoginHistory records each successful OTP verification. Rows older than
// seven days are purged on login.
type LoginHistory struct {
	gorm.Model
	UserID    uint `gorm:"index;not null"`
	UserName  string
	Mobile    string
	IsNewUser bool
}

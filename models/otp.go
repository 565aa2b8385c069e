package models

import (
	"gorm.io/gorm"
)

// OTP is a one-time login code sent by SMS. The latest unused row per
// mobile is the live one; verification marks it used.
type OTP struct {
	gorm.Model
	Mobile string `gorm:"index;not null"`
	Code   string `gorm:"not null"`
	Used   bool
}

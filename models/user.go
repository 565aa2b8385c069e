package models

import (
	"gorm.io/gorm"
)

// User signs in with a mobile number; there is no password.
type User struct {
	gorm.Model
	Mobile              string `gorm:"uniqueIndex;not null"`
	OnboardingCompleted bool
}

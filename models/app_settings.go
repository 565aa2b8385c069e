package models

import (
	"gorm.io/gorm"
)

// UserAppSettings holds per-user app preferences.
type UserAppSettings struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	NotificationsEnabled bool   `gorm:"default:true"`
	MealRemindersEnabled bool   `gorm:"default:true"`
	ReminderTime         string // "HH:MM", empty when unset
	WeeklySummaryEnabled bool
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyNutritionSummary is one row per (user, date). Consumed columns
// always equal the sum over that day's eaten meal entries; targets are
// refreshed from the current profile on every recompute.
type DailyNutritionSummary struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:idx_daily_summary_key;not null"`
	Date   time.Time `gorm:"uniqueIndex:idx_daily_summary_key;not null"`

	CaloriesTarget   int
	CaloriesConsumed int

	ProteinG      float64
	ProteinTarget float64

	CarbsG      float64
	CarbsTarget float64

	FatsG      float64
	FatsTarget float64
}

func (s *DailyNutritionSummary) CaloriesRemaining() int {
	if r := s.CaloriesTarget - s.CaloriesConsumed; r > 0 {
		return r
	}
	return 0
}

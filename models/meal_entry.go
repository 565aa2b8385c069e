package models

import (
	"time"

	"gorm.io/gorm"
)

// The five fixed meal slots, in day order.
var MealTypes = []string{"Breakfast", "Brunch", "Lunch", "Evening Snacks", "Dinner"}

func IsMealType(s string) bool {
	for _, mt := range MealTypes {
		if mt == s {
			return true
		}
	}
	return false
}

// MealEntry is one row per (user, date, meal type, food name), not one
// per add. Quantity accumulates and the macro columns are quantity-scaled
// totals. The row is deleted when quantity reaches zero.
type MealEntry struct {
	gorm.Model
	UserID   uint      `gorm:"uniqueIndex:idx_meal_entry_key;not null" json:"-"`
	Date     time.Time `gorm:"uniqueIndex:idx_meal_entry_key;not null" json:"date"`
	MealType string    `gorm:"uniqueIndex:idx_meal_entry_key;not null" json:"meal_type"`
	Name     string    `gorm:"uniqueIndex:idx_meal_entry_key;not null" json:"name"`

	Serving  string  `json:"serving"`
	Quantity float64 `json:"quantity"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`

	Eaten bool `json:"eaten"`
}

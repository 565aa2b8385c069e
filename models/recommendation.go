package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RecommendationItem is one suggested food inside a cached recommendation.
type RecommendationItem struct {
	Name     string  `json:"name"`
	Serving  string  `json:"serving"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
	Note     string  `json:"note"`
	ImageURL string  `json:"image_url"`
}

type RecommendationItems []RecommendationItem

func (i RecommendationItems) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	b, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *RecommendationItems) Scan(value interface{}) error {
	if value == nil {
		*i = RecommendationItems{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return fmt.Errorf("cannot scan %T into RecommendationItems", value)
	}
}

// MealRecommendation caches one AI-generated slot recommendation for
// seven days. Expired rows are deleted lazily on the next read; failed
// generations are never cached.
type MealRecommendation struct {
	gorm.Model
	UserID   uint      `gorm:"uniqueIndex:idx_meal_rec_key;not null"`
	Date     time.Time `gorm:"uniqueIndex:idx_meal_rec_key;not null"`
	MealType string    `gorm:"uniqueIndex:idx_meal_rec_key;not null"`

	Items RecommendationItems `gorm:"type:text"`

	// profile snapshot at generation time
	Goal             string
	DietPreference   string
	HealthConditions StringList `gorm:"type:text"`

	TargetCalories int
}

// IsValid reports whether the record is within its 7-day cache window.
func (r *MealRecommendation) IsValid(now time.Time) bool {
	return now.Before(r.CreatedAt.Add(7 * 24 * time.Hour))
}

// SlotPlan is the outcome of one slot's generation inside a weekly plan.
// A failed slot keeps its error alongside an empty item list instead of
// being indistinguishable from a deliberately empty one.
type SlotPlan struct {
	Status string              `json:"status"` // "ok" | "error"
	Error  string              `json:"error,omitempty"`
	Items  RecommendationItems `json:"items"`
}

// WeekPlan maps date (YYYY-MM-DD) -> meal type -> slot outcome.
type WeekPlan map[string]map[string]SlotPlan

func (p WeekPlan) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *WeekPlan) Scan(value interface{}) error {
	if value == nil {
		*p = WeekPlan{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into WeekPlan", value)
	}
}

// WeeklyMealRecommendation caches a whole week as one unit: created empty
// on first access, populated in full on that same access, never
// partially regenerated afterwards.
type WeeklyMealRecommendation struct {
	gorm.Model
	UserID        uint      `gorm:"uniqueIndex:idx_weekly_rec_key;not null"`
	WeekStartDate time.Time `gorm:"uniqueIndex:idx_weekly_rec_key;not null"`
	UserName      string

	Plan WeekPlan `gorm:"type:text"`
}

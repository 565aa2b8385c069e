package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Closed vocabularies collected during onboarding.
var (
	Genders = []string{"Male", "Female", "Others"}

	Goals = []string{"Weight Loss", "Weight Gain", "Muscle Gain"}

	DietPreferences = []string{
		"Veg",
		"Non-Veg",
		"Vegan",
		"Eggetarian",
		"Keto / Low-Carb",
		"High Protein",
	}

	HealthConditions = []string{
		"Diabetes",
		"High Blood Pressure",
		"Thyroid Issues",
		"PCOS / PCOD",
		"Digestive Issues",
		"Food Allergies",
		"Others",
		"None of These",
	}

	Allergies = []string{
		"Peanuts",
		"Tree Nuts",
		"Milk/Dairy",
		"Eggs",
		"Fish",
		"Shellfish",
		"Soy",
		"Wheat/Gluten",
		"Sesame",
		"Mustard",
		"Others",
		"None of These",
	}
)

// StringList stores a set of tags as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// UserProfile is the health/diet snapshot collected during onboarding.
// Read-only input to target calculation and meal recommendation.
type UserProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Name       string
	Age        int
	Weight     float64
	WeightUnit string `gorm:"default:kg"` // "kg" | "lbs"
	HeightCm   float64
	Gender     string
	Goal       string
	DietPref   string `gorm:"column:diet_preference" json:"diet_preference"`

	TargetWeight float64

	HealthConditions   StringList `gorm:"type:text"`
	OtherConditionText string
	Allergies          StringList `gorm:"type:text"`
	AllergyNotes       string

	ProfileImageURL string
}

// WeightKg normalizes the stored weight to kilograms.
func (p *UserProfile) WeightKg() float64 {
	if p.Weight <= 0 {
		return 0
	}
	if p.WeightUnit == "lbs" {
		return p.Weight / 2.205
	}
	return p.Weight
}

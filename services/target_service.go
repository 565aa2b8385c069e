package services

import (
	"math"

	"dietapp-backend/models"
)

// NutritionTargets are the daily calorie/macro targets derived from a
// profile.
type NutritionTargets struct {
	Calories int     `json:"calories_target"`
	ProteinG float64 `json:"protein_target"`
	CarbsG   float64 `json:"carbs_target"`
	FatsG    float64 `json:"fats_target"`
}

// Profile fallbacks when onboarding fields are missing.
const (
	defaultAge      = 30
	defaultHeightCm = 170.0
	defaultWeightKg = 70.0
)

// ComputeDailyTargets derives daily targets with the Mifflin-St Jeor
// equation and a fixed 1.55 activity factor. Goal does not change total
// calories here, only the macro split via diet preference.
//
// Note: per-slot targets in ComputeMealSlotTarget intentionally use a
// different formula (Harris-Benedict with goal-based multipliers); the
// two are independent target models and must not be unified.
func ComputeDailyTargets(p *models.UserProfile) NutritionTargets {
	if p == nil {
		return NutritionTargets{Calories: 2000, ProteinG: 150, CarbsG: 200, FatsG: 65}
	}

	age := p.Age
	if age <= 0 {
		age = defaultAge
	}
	heightCm := p.HeightCm
	if heightCm <= 0 {
		heightCm = defaultHeightCm
	}
	weightKg := p.WeightKg()
	if weightKg <= 0 {
		weightKg = defaultWeightKg
	}
	gender := p.Gender
	if gender == "" {
		gender = "Male"
	}
	dietPref := p.DietPref
	if dietPref == "" {
		dietPref = "Non-Veg"
	}

	var bmr float64
	if gender == "Male" {
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(age) + 5
	} else {
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(age) - 161
	}

	tdee := bmr * 1.55
	caloriesTarget := int(math.Floor(tdee))

	// health conditions tweak protein only; first match wins
	proteinMultiplier := 1.0
	switch {
	case p.HealthConditions.Contains("Diabetes"):
		proteinMultiplier = 1.1
	case p.HealthConditions.Contains("High Blood Pressure"):
		proteinMultiplier = 0.95
	case p.HealthConditions.Contains("Thyroid Issues"):
		proteinMultiplier = 1.05
	}

	proteinTarget := weightKg * 1.6 * proteinMultiplier
	fatsTarget := weightKg * 0.9

	carbsKcal := math.Max(float64(caloriesTarget)-proteinTarget*4-fatsTarget*9, 0)
	carbsTarget := carbsKcal / 4

	switch dietPref {
	case "High Protein":
		proteinTarget *= 1.25
		carbsTarget = math.Max(carbsTarget*0.85, 0)
	case "Keto / Low-Carb":
		carbsTarget *= 0.5
		fatsTarget *= 1.2
	case "Vegan":
		proteinTarget *= 1.15
	}

	return NutritionTargets{
		Calories: caloriesTarget,
		ProteinG: round1(proteinTarget),
		CarbsG:   round1(carbsTarget),
		FatsG:    round1(fatsTarget),
	}
}

var mealSlotShare = map[string]float64{
	"Breakfast":      0.25,
	"Brunch":         0.15,
	"Lunch":          0.35,
	"Evening Snacks": 0.10,
	"Dinner":         0.30,
}

// ComputeMealSlotTarget returns the calorie target for one meal slot
// using Harris-Benedict BMR, a goal-based activity multiplier and a
// fixed percentage-of-day split. Minimum 300 kcal.
func ComputeMealSlotTarget(p *models.UserProfile, mealType string) int {
	weightKg := defaultWeightKg
	heightCm := 175.0
	age := defaultAge
	gender := "Male"
	goal := "Weight Loss"

	if p != nil {
		if w := p.WeightKg(); w > 0 {
			weightKg = w
		}
		if p.HeightCm > 0 {
			heightCm = p.HeightCm
		}
		if p.Age > 0 {
			age = p.Age
		}
		if p.Gender != "" {
			gender = p.Gender
		}
		if p.Goal != "" {
			goal = p.Goal
		}
	}

	var bmr float64
	if gender == "Female" {
		bmr = 655 + 9.6*weightKg + 1.8*heightCm - 4.7*float64(age)
	} else {
		bmr = 88 + 13.4*weightKg + 4.8*heightCm - 5.7*float64(age)
	}

	var tdee float64
	switch goal {
	case "Weight Loss":
		tdee = bmr * 1.4
	case "Weight Gain":
		tdee = bmr * 1.6
	default: // Muscle Gain
		tdee = bmr * 1.5
	}

	share, ok := mealSlotShare[mealType]
	if !ok {
		share = 0.25
	}

	target := int(math.Floor(tdee * share))
	if target < 300 {
		target = 300
	}
	return target
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

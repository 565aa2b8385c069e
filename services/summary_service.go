package services

import (
	"math"
	"time"

	"dietapp-backend/config"
	"dietapp-backend/models"
)

// DateOf strips the time-of-day, leaving a date key as stored on entries
// and summaries.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Recompute rebuilds the daily summary for (user, date): consumed totals
// are derived by scanning that day's eaten entries, and targets are
// refreshed from the current profile. Profile edits therefore change the
// stored targets of past days too. Because every value written here is
// derived, concurrent recomputes converge on the same row.
func Recompute(userID uint, date time.Time) (*models.DailyNutritionSummary, error) {
	profile, err := GetProfile(userID)
	if err != nil && err != ErrProfileMissing {
		return nil, err
	}
	targets := ComputeDailyTargets(profile)

	var consumed struct {
		Calories float64
		ProteinG float64
		CarbsG   float64
		FatsG    float64
	}
	err = config.DB.Model(&models.MealEntry{}).
		Select("COALESCE(SUM(calories),0) AS calories, COALESCE(SUM(protein_g),0) AS protein_g, COALESCE(SUM(carbs_g),0) AS carbs_g, COALESCE(SUM(fats_g),0) AS fats_g").
		Where("user_id = ? AND date = ? AND eaten = ?", userID, date, true).
		Scan(&consumed).Error
	if err != nil {
		return nil, err
	}

	summary := models.DailyNutritionSummary{UserID: userID, Date: date}
	if err := config.DB.Where("user_id = ? AND date = ?", userID, date).FirstOrCreate(&summary).Error; err != nil {
		return nil, err
	}

	summary.CaloriesConsumed = int(math.Round(consumed.Calories))
	summary.ProteinG = consumed.ProteinG
	summary.CarbsG = consumed.CarbsG
	summary.FatsG = consumed.FatsG
	summary.CaloriesTarget = targets.Calories
	summary.ProteinTarget = targets.ProteinG
	summary.CarbsTarget = targets.CarbsG
	summary.FatsTarget = targets.FatsG

	if err := config.DB.Save(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// Percent is the shared progress helper: round(consumed/target*100)
// clamped to [0,100], 0 when the target is not positive.
func Percent(consumed, target float64) int {
	if target <= 0 {
		return 0
	}
	p := int(math.Round(consumed / target * 100))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

type CalorieBlock struct {
	Consumed   int `json:"consumed"`
	Target     int `json:"target"`
	Remaining  int `json:"remaining"`
	Percentage int `json:"percentage"`
}

type MacroBlock struct {
	Consumed   float64 `json:"consumed"`
	Target     float64 `json:"target"`
	Remaining  float64 `json:"remaining"`
	Percentage int     `json:"percentage"`
}

type TodaySummary struct {
	UserName string       `json:"user_name"`
	Date     string       `json:"date"`
	Calories CalorieBlock `json:"calories"`
	Proteins MacroBlock   `json:"proteins"`
	Carbs    MacroBlock   `json:"carbs"`
	Fats     MacroBlock   `json:"fats"`
}

// Today recomputes and packages today's dashboard block.
func Today(userID uint) (*TodaySummary, error) {
	date := DateOf(time.Now())
	s, err := Recompute(userID, date)
	if err != nil {
		return nil, err
	}

	name := "User"
	if p, err := GetProfile(userID); err == nil && p.Name != "" {
		name = p.Name
	}

	return &TodaySummary{
		UserName: name,
		Date:     date.Format("2006-01-02"),
		Calories: CalorieBlock{
			Consumed:   s.CaloriesConsumed,
			Target:     s.CaloriesTarget,
			Remaining:  s.CaloriesRemaining(),
			Percentage: Percent(float64(s.CaloriesConsumed), float64(s.CaloriesTarget)),
		},
		Proteins: macroBlock(s.ProteinG, s.ProteinTarget),
		Carbs:    macroBlock(s.CarbsG, s.CarbsTarget),
		Fats:     macroBlock(s.FatsG, s.FatsTarget),
	}, nil
}

func macroBlock(consumed, target float64) MacroBlock {
	return MacroBlock{
		Consumed:   round1(consumed),
		Target:     round1(target),
		Remaining:  round1(math.Max(target-consumed, 0)),
		Percentage: Percent(consumed, target),
	}
}

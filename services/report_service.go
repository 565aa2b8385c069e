package services

import (
	"time"

	"dietapp-backend/config"
	"dietapp-backend/models"
)

type DayBreakdown struct {
	Date           string  `json:"date"`
	Calories       int     `json:"calories"`
	CaloriesTarget int     `json:"calories_target"`
	Proteins       float64 `json:"proteins"`
	ProteinsTarget float64 `json:"proteins_target"`
	Carbs          float64 `json:"carbs"`
	CarbsTarget    float64 `json:"carbs_target"`
	Fats           float64 `json:"fats"`
	FatsTarget     float64 `json:"fats_target"`
}

type RangeReport struct {
	UserName  string         `json:"user_name"`
	Month     string         `json:"month,omitempty"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Calories  CalorieBlock   `json:"calories"`
	Proteins  MacroBlock     `json:"proteins"`
	Carbs     MacroBlock     `json:"carbs"`
	Fats      MacroBlock     `json:"fats"`
	Days      []DayBreakdown `json:"days"`
}

// WeeklyReport covers the 7 trailing days ending at end (inclusive).
func WeeklyReport(userID uint, end time.Time) (*RangeReport, error) {
	end = DateOf(end)
	start := end.AddDate(0, 0, -6)
	return rangeReport(userID, start, end)
}

// MonthlyReport covers one calendar month. The window end is the last
// calendar day, first-of-next-month minus one day.
func MonthlyReport(userID uint, firstDay time.Time) (*RangeReport, error) {
	firstDay = time.Date(firstDay.Year(), firstDay.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, 0).AddDate(0, 0, -1)

	report, err := rangeReport(userID, firstDay, lastDay)
	if err != nil {
		return nil, err
	}
	report.Month = firstDay.Format("2006-01")
	return report, nil
}

// rangeReport walks every day in [start, end]. Days with a stored
// summary use its values; missing days count zero consumed against the
// user's CURRENT computed targets.
func rangeReport(userID uint, start, end time.Time) (*RangeReport, error) {
	var rows []models.DailyNutritionSummary
	err := config.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.DailyNutritionSummary, len(rows))
	for _, r := range rows {
		byDate[r.Date.Format("2006-01-02")] = r
	}

	profile, err := GetProfile(userID)
	if err != nil && err != ErrProfileMissing {
		return nil, err
	}
	current := ComputeDailyTargets(profile)

	name := "User"
	if profile != nil && profile.Name != "" {
		name = profile.Name
	}

	var days []DayBreakdown
	var targetCal, consumedCal int
	var targetProt, consumedProt, targetCarbs, consumedCarbs, targetFats, consumedFats float64

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if row, ok := byDate[key]; ok {
			days = append(days, DayBreakdown{
				Date:           key,
				Calories:       row.CaloriesConsumed,
				CaloriesTarget: row.CaloriesTarget,
				Proteins:       round1(row.ProteinG),
				ProteinsTarget: round1(row.ProteinTarget),
				Carbs:          round1(row.CarbsG),
				CarbsTarget:    round1(row.CarbsTarget),
				Fats:           round1(row.FatsG),
				FatsTarget:     round1(row.FatsTarget),
			})
			targetCal += row.CaloriesTarget
			consumedCal += row.CaloriesConsumed
			targetProt += row.ProteinTarget
			consumedProt += row.ProteinG
			targetCarbs += row.CarbsTarget
			consumedCarbs += row.CarbsG
			targetFats += row.FatsTarget
			consumedFats += row.FatsG
		} else {
			days = append(days, DayBreakdown{
				Date:           key,
				CaloriesTarget: current.Calories,
				ProteinsTarget: current.ProteinG,
				CarbsTarget:    current.CarbsG,
				FatsTarget:     current.FatsG,
			})
			targetCal += current.Calories
			targetProt += current.ProteinG
			targetCarbs += current.CarbsG
			targetFats += current.FatsG
		}
	}

	remainingCal := targetCal - consumedCal
	if remainingCal < 0 {
		remainingCal = 0
	}

	return &RangeReport{
		UserName:  name,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Calories: CalorieBlock{
			Consumed:   consumedCal,
			Target:     targetCal,
			Remaining:  remainingCal,
			Percentage: Percent(float64(consumedCal), float64(targetCal)),
		},
		Proteins: macroBlock(consumedProt, targetProt),
		Carbs:    macroBlock(consumedCarbs, targetCarbs),
		Fats:     macroBlock(consumedFats, targetFats),
		Days:     days,
	}, nil
}

type DailyMacros struct {
	Date     string  `json:"date"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

type WeeklyMacrosReport struct {
	From   string             `json:"from"`
	To     string             `json:"to"`
	Totals map[string]float64 `json:"totals"`
	Daily  []DailyMacros      `json:"daily"`
}

// WeeklyMacros breaks the last 7 days' grams down into a percentage
// split of the total.
func WeeklyMacros(userID uint) (*WeeklyMacrosReport, error) {
	to := DateOf(time.Now())
	from := to.AddDate(0, 0, -6)

	var rows []models.DailyNutritionSummary
	err := config.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	daily := make([]DailyMacros, 0, len(rows))
	var prot, carbs, fats float64
	for _, r := range rows {
		daily = append(daily, DailyMacros{
			Date:     r.Date.Format("2006-01-02"),
			ProteinG: r.ProteinG,
			CarbsG:   r.CarbsG,
			FatsG:    r.FatsG,
		})
		prot += r.ProteinG
		carbs += r.CarbsG
		fats += r.FatsG
	}

	var protPct, carbsPct, fatsPct float64
	if total := prot + carbs + fats; total > 0 {
		protPct = prot / total * 100
		carbsPct = carbs / total * 100
		fatsPct = fats / total * 100
	}

	return &WeeklyMacrosReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Totals: map[string]float64{
			"protein_g":   prot,
			"carbs_g":     carbs,
			"fats_g":      fats,
			"protein_pct": round1(protPct),
			"carbs_pct":   round1(carbsPct),
			"fats_pct":    round1(fatsPct),
		},
		Daily: daily,
	}, nil
}

type TrendPoint struct {
	Date              string `json:"date"`
	CaloriesTarget    int    `json:"calories_target"`
	CaloriesConsumed  int    `json:"calories_consumed"`
	CaloriesRemaining int    `json:"calories_remaining"`
}

// CaloriesTrend lists stored summaries in [from, to]; unlike the range
// reports it does not gap-fill missing days.
func CaloriesTrend(userID uint, from, to time.Time) ([]TrendPoint, error) {
	var rows []models.DailyNutritionSummary
	err := config.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, DateOf(from), DateOf(to)).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	series := make([]TrendPoint, 0, len(rows))
	for _, r := range rows {
		series = append(series, TrendPoint{
			Date:              r.Date.Format("2006-01-02"),
			CaloriesTarget:    r.CaloriesTarget,
			CaloriesConsumed:  r.CaloriesConsumed,
			CaloriesRemaining: r.CaloriesRemaining(),
		})
	}
	return series, nil
}

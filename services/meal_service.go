package services

import (
	"errors"
	"math"
	"time"

	"dietapp-backend/config"
	"dietapp-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Macros are per-unit macro values as supplied by the caller for one
// serving of a food.
type Macros struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatsG    float64
}

// AddEntry records quantity servings of a food. Entries are keyed by
// (user, date, meal type, name): the first add creates the row, later
// adds accumulate quantity and totals using the macros passed on THAT
// call, so differing per-call macros blend into the aggregate. The
// upsert-and-accumulate is a single statement, safe under concurrent
// adds of the same food.
func AddEntry(userID uint, date time.Time, mealType, name, serving string, perUnit Macros, quantity float64) (*models.MealEntry, error) {
	entry := models.MealEntry{
		UserID:   userID,
		Date:     date,
		MealType: mealType,
		Name:     name,
		Serving:  serving,
		Quantity: quantity,
		Calories: perUnit.Calories * quantity,
		ProteinG: perUnit.ProteinG * quantity,
		CarbsG:   perUnit.CarbsG * quantity,
		FatsG:    perUnit.FatsG * quantity,
	}

	err := config.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "date"}, {Name: "meal_type"}, {Name: "name"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("meal_entries.quantity + excluded.quantity"),
			"calories":   gorm.Expr("meal_entries.calories + excluded.calories"),
			"protein_g":  gorm.Expr("meal_entries.protein_g + excluded.protein_g"),
			"carbs_g":    gorm.Expr("meal_entries.carbs_g + excluded.carbs_g"),
			"fats_g":     gorm.Expr("meal_entries.fats_g + excluded.fats_g"),
			"serving":    gorm.Expr("CASE WHEN meal_entries.serving = '' THEN excluded.serving ELSE meal_entries.serving END"),
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	var saved models.MealEntry
	if err := config.DB.
		Where("user_id = ? AND date = ? AND meal_type = ? AND name = ?", userID, date, mealType, name).
		First(&saved).Error; err != nil {
		return nil, err
	}

	if _, err := Recompute(userID, date); err != nil {
		return nil, err
	}
	return &saved, nil
}

// RemoveOneServing subtracts one implied serving (current totals divided
// by current quantity) from an entry. When the last serving goes, the
// row is deleted and nil is returned.
func RemoveOneServing(userID, entryID uint) (*models.MealEntry, error) {
	var entry models.MealEntry
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}

		if entry.Quantity <= 1 {
			// quantity 0 guard doubles as the division-by-zero guard
			if err := tx.Unscoped().Delete(&entry).Error; err != nil {
				return err
			}
			entry.Quantity = 0
			return nil
		}

		oneCal := entry.Calories / entry.Quantity
		oneProt := entry.ProteinG / entry.Quantity
		oneCarbs := entry.CarbsG / entry.Quantity
		oneFats := entry.FatsG / entry.Quantity

		entry.Quantity -= 1
		entry.Calories -= oneCal
		entry.ProteinG -= oneProt
		entry.CarbsG -= oneCarbs
		entry.FatsG -= oneFats
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	if _, err := Recompute(userID, entry.Date); err != nil {
		return nil, err
	}
	if entry.Quantity == 0 {
		return nil, nil
	}
	return &entry, nil
}

// ToggleEaten flips the eaten flag; macros stay untouched.
func ToggleEaten(userID, entryID uint) (*models.MealEntry, error) {
	var entry models.MealEntry
	if err := config.DB.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	entry.Eaten = !entry.Eaten
	if err := config.DB.Save(&entry).Error; err != nil {
		return nil, err
	}

	if _, err := Recompute(userID, entry.Date); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DayMeals groups a day's entries by meal slot. Every slot is present in
// the result even when empty; totals cover all entries regardless of the
// eaten flag.
type DayMeals struct {
	Date   string                        `json:"date"`
	Meals  map[string][]models.MealEntry `json:"meals"`
	Totals map[string]float64            `json:"totals"`
}

func GetDayMeals(userID uint, date time.Time) (*DayMeals, error) {
	var entries []models.MealEntry
	err := config.DB.
		Where("user_id = ? AND date = ?", userID, date).
		Order("meal_type, id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	mealMap := make(map[string][]models.MealEntry, len(models.MealTypes))
	for _, mt := range models.MealTypes {
		mealMap[mt] = []models.MealEntry{}
	}

	var cals, prot, carbs, fats float64
	for _, e := range entries {
		mealMap[e.MealType] = append(mealMap[e.MealType], e)
		cals += e.Calories
		prot += e.ProteinG
		carbs += e.CarbsG
		fats += e.FatsG
	}

	return &DayMeals{
		Date:  date.Format("2006-01-02"),
		Meals: mealMap,
		Totals: map[string]float64{
			"calories":  round2(cals),
			"protein_g": round2(prot),
			"carbs_g":   round2(carbs),
			"fats_g":    round2(fats),
		},
	}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

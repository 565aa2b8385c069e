package services

import (
	"errors"
	"time"

	"dietapp-backend/config"
	"dietapp-backend/logger"
	"dietapp-backend/models"
	"dietapp-backend/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recommendationMaxItems = 8

// Generator produces AI meal suggestions for one slot. Implemented by
// OpenAIService; tests substitute fakes.
type Generator interface {
	Generate(profile *models.UserProfile, mealType string) (*GeneratedMeal, error)
}

// ImageProvider resolves an item to an image URL, best effort, never
// failing.
type ImageProvider interface {
	ImageFor(name, serving string) string
}

// RecommendationService manages the per-slot recommendation cache:
// MISSING -> generated and stored, VALID (younger than 7 days) -> served
// verbatim, EXPIRED -> deleted on read and regenerated. Generation
// failures are surfaced per slot and never stored, so the next read
// retries.
type RecommendationService struct {
	gen    Generator
	images ImageProvider
}

func NewRecommendationService(gen Generator, images ImageProvider) *RecommendationService {
	return &RecommendationService{gen: gen, images: images}
}

// SlotRecommendation is one slot's outcome in an API response. Either
// Items is populated, or Error is set and the slot carries no content.
type SlotRecommendation struct {
	MealType         string                     `json:"meal_type"`
	Goal             string                     `json:"goal,omitempty"`
	DietPreference   string                     `json:"diet_preference,omitempty"`
	HealthConditions models.StringList          `json:"health_conditions,omitempty"`
	TargetCalories   int                        `json:"target_calories,omitempty"`
	Items            models.RecommendationItems `json:"items,omitempty"`
	Cached           bool                       `json:"cached"`
	CreatedAt        string                     `json:"created_at,omitempty"`
	Error            string                     `json:"error,omitempty"`
}

// GetOrGenerate returns the recommendation for one (user, date, slot)
// key, generating and caching it when absent or expired.
func (s *RecommendationService) GetOrGenerate(userID uint, profile *models.UserProfile, date time.Time, mealType string) (*SlotRecommendation, error) {
	now := time.Now()

	var rec models.MealRecommendation
	err := config.DB.
		Where("user_id = ? AND date = ? AND meal_type = ?", userID, date, mealType).
		First(&rec).Error
	switch {
	case err == nil:
		if rec.IsValid(now) {
			return &SlotRecommendation{
				MealType:         mealType,
				Goal:             rec.Goal,
				DietPreference:   rec.DietPreference,
				HealthConditions: rec.HealthConditions,
				TargetCalories:   rec.TargetCalories,
				Items:            rec.Items,
				Cached:           true,
				CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
			}, nil
		}
		// expired: evict lazily and regenerate below
		logger.Info("recommendation cache expired, regenerating", logrus.Fields{
			"user": userID, "meal_type": mealType, "date": date.Format("2006-01-02"),
		})
		if err := config.DB.Unscoped().Delete(&rec).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// cache miss, generate below
	default:
		return nil, err
	}

	generated, err := s.gen.Generate(profile, mealType)
	if err != nil {
		// no negative caching: the failure is not stored, the next read
		// calls the generator again
		logger.Error("recommendation generation failed", logrus.Fields{
			"user": userID, "meal_type": mealType, "error": err.Error(),
		})
		return nil, err
	}

	items := s.cleanItems(generated.Items)
	target := ComputeMealSlotTarget(profile, mealType)

	rec = models.MealRecommendation{
		UserID:           userID,
		Date:             date,
		MealType:         mealType,
		Items:            items,
		Goal:             profile.Goal,
		DietPreference:   profile.DietPref,
		HealthConditions: profile.HealthConditions,
		TargetCalories:   target,
	}
	if err := config.DB.Create(&rec).Error; err != nil {
		return nil, err
	}

	return &SlotRecommendation{
		MealType:         mealType,
		Goal:             profile.Goal,
		DietPreference:   profile.DietPref,
		HealthConditions: profile.HealthConditions,
		TargetCalories:   target,
		Items:            items,
		Cached:           false,
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetDay resolves all five slots for a date independently: one slot's
// generation failure becomes an error entry in the result and never
// blocks its siblings.
func (s *RecommendationService) GetDay(userID uint, profile *models.UserProfile, date time.Time) []SlotRecommendation {
	out := make([]SlotRecommendation, 0, len(models.MealTypes))
	for _, mealType := range models.MealTypes {
		slot, err := s.GetOrGenerate(userID, profile, date, mealType)
		if err != nil {
			out = append(out, SlotRecommendation{MealType: mealType, Error: err.Error()})
			continue
		}
		out = append(out, *slot)
	}
	return out
}

// GetOrGenerateWeek treats the whole week as one cache unit. An empty
// plan is filled in a single pass over 7 days x all slots, each slot
// wrapped in its own error boundary so a failure is recorded per slot
// instead of poisoning the week. A populated plan is never regenerated.
func (s *RecommendationService) GetOrGenerateWeek(userID uint, profile *models.UserProfile, weekStart time.Time) (*models.WeeklyMealRecommendation, error) {
	weekly := models.WeeklyMealRecommendation{
		UserID:        userID,
		WeekStartDate: weekStart,
		UserName:      profile.Name,
	}
	if err := config.DB.
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		FirstOrCreate(&weekly).Error; err != nil {
		return nil, err
	}

	if len(weekly.Plan) > 0 {
		return &weekly, nil
	}

	plan := make(models.WeekPlan, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		dayKey := day.Format("2006-01-02")
		plan[dayKey] = make(map[string]models.SlotPlan, len(models.MealTypes))

		for _, mealType := range models.MealTypes {
			generated, err := s.gen.Generate(profile, mealType)
			if err != nil {
				logger.Error("weekly slot generation failed", logrus.Fields{
					"user": userID, "day": dayKey, "meal_type": mealType, "error": err.Error(),
				})
				plan[dayKey][mealType] = models.SlotPlan{
					Status: "error",
					Error:  err.Error(),
					Items:  models.RecommendationItems{},
				}
				continue
			}
			plan[dayKey][mealType] = models.SlotPlan{
				Status: "ok",
				Items:  s.cleanItems(generated.Items),
			}
		}
	}

	weekly.Plan = plan
	if err := config.DB.Save(&weekly).Error; err != nil {
		return nil, err
	}
	return &weekly, nil
}

// cleanItems coerces loosely typed model output into persistable items,
// capped at recommendationMaxItems, each with an image URL attached.
func (s *RecommendationService) cleanItems(raw []RawItem) models.RecommendationItems {
	if len(raw) > recommendationMaxItems {
		raw = raw[:recommendationMaxItems]
	}
	items := make(models.RecommendationItems, 0, len(raw))
	for _, r := range raw {
		items = append(items, models.RecommendationItem{
			Name:     r.Name,
			Serving:  r.Serving,
			Calories: utils.CoerceFloat(r.Calories),
			ProteinG: utils.CoerceFloat(r.ProteinG),
			CarbsG:   utils.CoerceFloat(r.CarbsG),
			FatsG:    utils.CoerceFloat(r.FatsG),
			Note:     r.Note,
			ImageURL: s.images.ImageFor(r.Name, r.Serving),
		})
	}
	return items
}

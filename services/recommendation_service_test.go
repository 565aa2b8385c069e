package services

import (
	"errors"
	"testing"
	"time"

	"dietapp-backend/config"
	"dietapp-backend/models"
)

type fakeGenerator struct {
	calls    int
	failFor  map[string]bool
	failNext bool
}

func (g *fakeGenerator) Generate(profile *models.UserProfile, mealType string) (*GeneratedMeal, error) {
	g.calls++
	if g.failNext || g.failFor[mealType] {
		return nil, errors.New("model unavailable")
	}
	return &GeneratedMeal{
		Items: []RawItem{
			{Name: "Masala Oats", Serving: "1 bowl", Calories: "250-300", ProteinG: 9, CarbsG: "45 g", FatsG: 6.5, Note: "high fibre"},
			{Name: "Sprout Salad", Serving: "1 cup", Calories: 120, ProteinG: 8, CarbsG: 18, FatsG: 2},
		},
	}, nil
}

type fakeImages struct{}

func (fakeImages) ImageFor(name, serving string) string { return "img://" + name }

func recFixture(t *testing.T) (*RecommendationService, *fakeGenerator, *models.UserProfile) {
	t.Helper()
	setupTestDB(t)
	gen := &fakeGenerator{failFor: map[string]bool{}}
	svc := NewRecommendationService(gen, fakeImages{})
	return svc, gen, baseProfile()
}

func TestGetOrGenerate(t *testing.T) {
	svc, gen, profile := recFixture(t)
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("miss generates and stores", func(t *testing.T) {
		got, err := svc.GetOrGenerate(1, profile, date, "Breakfast")
		if err != nil {
			t.Fatalf("GetOrGenerate: %v", err)
		}
		if got.Cached {
			t.Error("first read must not be cached")
		}
		if gen.calls != 1 {
			t.Errorf("generator calls = %d, want 1", gen.calls)
		}
		if len(got.Items) != 2 {
			t.Fatalf("items = %d, want 2", len(got.Items))
		}
		if got.Items[0].Calories != 275 {
			t.Errorf("range calories coerced to %v, want 275", got.Items[0].Calories)
		}
		if got.Items[0].CarbsG != 45 {
			t.Errorf("unit-suffixed carbs coerced to %v, want 45", got.Items[0].CarbsG)
		}
		if got.Items[0].ImageURL != "img://Masala Oats" {
			t.Errorf("image url = %q", got.Items[0].ImageURL)
		}
		if got.TargetCalories != 593 {
			t.Errorf("target = %d, want 593", got.TargetCalories)
		}
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		got, err := svc.GetOrGenerate(1, profile, date, "Breakfast")
		if err != nil {
			t.Fatalf("GetOrGenerate: %v", err)
		}
		if !got.Cached {
			t.Error("second read should be cached")
		}
		if gen.calls != 1 {
			t.Errorf("generator calls = %d, want still 1", gen.calls)
		}
	})

	t.Run("six day old cache is still valid", func(t *testing.T) {
		backdate(t, 1, date, "Breakfast", 6)
		got, err := svc.GetOrGenerate(1, profile, date, "Breakfast")
		if err != nil {
			t.Fatalf("GetOrGenerate: %v", err)
		}
		if !got.Cached || gen.calls != 1 {
			t.Errorf("cached=%v calls=%d, want cached with 1 call", got.Cached, gen.calls)
		}
	})

	t.Run("expired cache is evicted and regenerated", func(t *testing.T) {
		backdate(t, 1, date, "Breakfast", 8)
		got, err := svc.GetOrGenerate(1, profile, date, "Breakfast")
		if err != nil {
			t.Fatalf("GetOrGenerate: %v", err)
		}
		if got.Cached {
			t.Error("expired read must regenerate")
		}
		if gen.calls != 2 {
			t.Errorf("generator calls = %d, want 2", gen.calls)
		}

		var count int64
		config.DB.Model(&models.MealRecommendation{}).Where("user_id = ?", 1).Count(&count)
		if count != 1 {
			t.Errorf("rows = %d, want the expired row replaced", count)
		}
	})

	t.Run("failures are not cached", func(t *testing.T) {
		gen.failNext = true
		if _, err := svc.GetOrGenerate(1, profile, date, "Lunch"); err == nil {
			t.Fatal("want error from failed generation")
		}

		var count int64
		config.DB.Model(&models.MealRecommendation{}).
			Where("user_id = ? AND meal_type = ?", 1, "Lunch").Count(&count)
		if count != 0 {
			t.Errorf("failed generation stored %d rows", count)
		}

		gen.failNext = false
		got, err := svc.GetOrGenerate(1, profile, date, "Lunch")
		if err != nil {
			t.Fatalf("retry after failure: %v", err)
		}
		if got.Cached {
			t.Error("retry should be a fresh generation")
		}
	})
}

// backdate ages a cached slot by rewriting its created_at.
func backdate(t *testing.T, userID uint, date time.Time, mealType string, days int) {
	t.Helper()
	err := config.DB.Model(&models.MealRecommendation{}).
		Where("user_id = ? AND date = ? AND meal_type = ?", userID, date, mealType).
		Update("created_at", time.Now().Add(-time.Duration(days)*24*time.Hour)).Error
	if err != nil {
		t.Fatalf("backdate: %v", err)
	}
}

func TestGetDay(t *testing.T) {
	svc, gen, profile := recFixture(t)
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	gen.failFor["Lunch"] = true

	slots := svc.GetDay(1, profile, date)
	if len(slots) != len(models.MealTypes) {
		t.Fatalf("slots = %d, want %d", len(slots), len(models.MealTypes))
	}

	for _, slot := range slots {
		if slot.MealType == "Lunch" {
			if slot.Error == "" {
				t.Error("failed slot should carry its error")
			}
			if len(slot.Items) != 0 {
				t.Error("failed slot should carry no items")
			}
			continue
		}
		if slot.Error != "" {
			t.Errorf("%s: unexpected error %q", slot.MealType, slot.Error)
		}
		if len(slot.Items) == 0 {
			t.Errorf("%s: no items", slot.MealType)
		}
	}

	// the failed slot retries on the next read, siblings hit the cache
	gen.failFor["Lunch"] = false
	before := gen.calls
	slots = svc.GetDay(1, profile, date)
	if gen.calls != before+1 {
		t.Errorf("calls = %d, want %d (only the failed slot regenerates)", gen.calls, before+1)
	}
	for _, slot := range slots {
		if slot.Error != "" {
			t.Errorf("%s: unexpected error %q", slot.MealType, slot.Error)
		}
	}
}

func TestGetOrGenerateWeek(t *testing.T) {
	svc, gen, profile := recFixture(t)
	weekStart := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC) // a Monday

	gen.failFor["Dinner"] = true

	weekly, err := svc.GetOrGenerateWeek(1, profile, weekStart)
	if err != nil {
		t.Fatalf("GetOrGenerateWeek: %v", err)
	}

	if len(weekly.Plan) != 7 {
		t.Fatalf("plan days = %d, want 7", len(weekly.Plan))
	}
	for day, slots := range weekly.Plan {
		if len(slots) != len(models.MealTypes) {
			t.Fatalf("%s: slots = %d, want %d", day, len(slots), len(models.MealTypes))
		}
		for mealType, slot := range slots {
			if mealType == "Dinner" {
				if slot.Status != "error" || slot.Error == "" {
					t.Errorf("%s %s: status=%q error=%q, want recorded failure", day, mealType, slot.Status, slot.Error)
				}
				continue
			}
			if slot.Status != "ok" || len(slot.Items) == 0 {
				t.Errorf("%s %s: status=%q items=%d", day, mealType, slot.Status, len(slot.Items))
			}
		}
	}

	if gen.calls != 7*len(models.MealTypes) {
		t.Errorf("calls = %d, want %d", gen.calls, 7*len(models.MealTypes))
	}

	// a populated plan is one cache unit: no regeneration, even for
	// slots that failed
	before := gen.calls
	again, err := svc.GetOrGenerateWeek(1, profile, weekStart)
	if err != nil {
		t.Fatalf("GetOrGenerateWeek again: %v", err)
	}
	if gen.calls != before {
		t.Errorf("calls = %d, want unchanged %d", gen.calls, before)
	}
	if len(again.Plan) != 7 {
		t.Errorf("reloaded plan days = %d, want 7", len(again.Plan))
	}
}

package mealplan

import (
	"testing"
	"time"

	"nutriplan/internal/catalog"
)

func generatorCatalog() []catalog.Dish {
	var dishes []catalog.Dish
	add := func(id, name, mt string, cal, prot, carbs, fat float64) {
		dishes = append(dishes, mkDish(id, name, mt, cal, prot, carbs, fat))
	}
	for i, spec := range []struct{ cal, prot, carbs, fat float64 }{
		{600, 40, 60, 20},
		{560, 36, 58, 18},
		{640, 42, 62, 22},
		{520, 30, 55, 16},
		{680, 44, 65, 24},
		{580, 38, 56, 19},
		{620, 35, 64, 21},
		{540, 32, 52, 17},
	} {
		add("b"+string(rune('0'+i)), "Breakfast "+string(rune('A'+i)), "breakfast", spec.cal, spec.prot, spec.carbs, spec.fat)
		add("l"+string(rune('0'+i)), "Lunch "+string(rune('A'+i)), "lunch", spec.cal, spec.prot, spec.carbs, spec.fat)
		add("d"+string(rune('0'+i)), "Dinner "+string(rune('A'+i)), "dinner", spec.cal, spec.prot, spec.carbs, spec.fat)
	}
	return dishes
}

func TestGenerateDatesAndSlotOrder(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testRNG())
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	plan := g.Generate(testProfile(), generatorCatalog(), now)

	if plan.StartDate != "2024-03-10" {
		t.Errorf("start date = %s, want 2024-03-10", plan.StartDate)
	}
	if plan.EndDate != "2024-03-16" {
		t.Errorf("end date = %s, want 2024-03-16", plan.EndDate)
	}
	if len(plan.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(plan.Days))
	}
	for i, day := range plan.Days {
		want := LocalDate(now.AddDate(0, 0, i))
		if day.Date != want {
			t.Errorf("day %d date = %s, want %s", i, day.Date, want)
		}
		if len(day.Meals) != 3 {
			t.Fatalf("day %d: expected 3 meals, got %d", i, len(day.Meals))
		}
		order := []MealType{MealBreakfast, MealLunch, MealDinner}
		for j, mt := range order {
			if day.Meals[j].Type != mt {
				t.Errorf("day %d slot %d = %s, want %s", i, j, day.Meals[j].Type, mt)
			}
		}
	}
}

func TestGenerateDefaultsTimeframe(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testRNG())
	p := testProfile()
	p.Timeframe = 0

	plan := g.Generate(p, generatorCatalog(), time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	if len(plan.Days) != 7 {
		t.Errorf("zero timeframe must default to 7 days, got %d", len(plan.Days))
	}
}

func TestGenerateRepetitionConstraints(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGenerator(cfg, testRNG())
	plan := g.Generate(testProfile(), generatorCatalog(), time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

	lastDay := map[string]int{}
	counts := map[string]int{}
	for di, day := range plan.Days {
		for _, m := range day.Meals {
			if m.IsSentinel() {
				t.Fatalf("unexpected sentinel on day %d with a full catalog", di)
			}
			counts[m.ID]++
			if prev, seen := lastDay[m.ID]; seen {
				if di-prev < cfg.MinDaysBetweenSameDish {
					t.Errorf("dish %s reused on day %d after day %d, gap below %d",
						m.ID, di, prev, cfg.MinDaysBetweenSameDish)
				}
			}
			lastDay[m.ID] = di
		}
	}
	for id, n := range counts {
		if n > cfg.MaxRepeatsPerWeek {
			t.Errorf("dish %s appears %d times, cap is %d", id, n, cfg.MaxRepeatsPerWeek)
		}
	}
}

func TestGenerateSnackSlots(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testRNG())
	p := testProfile()
	p.MealsPerDay = 5

	dishes := generatorCatalog()
	for i := 0; i < 8; i++ {
		dishes = append(dishes, mkDish("s"+string(rune('0'+i)), "Snack "+string(rune('A'+i)), "snack",
			180+float64(i)*10, 12+float64(i), 20, 6))
	}

	plan := g.Generate(p, dishes, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	for i, day := range plan.Days {
		if len(day.Meals) != 5 {
			t.Fatalf("day %d: expected 5 meals, got %d", i, len(day.Meals))
		}
		for _, m := range day.Meals[3:] {
			if m.Type != MealSnack {
				t.Errorf("day %d: expected trailing snack slots, got %s", i, m.Type)
			}
		}
	}
}

func TestGenerateEmptyPoolYieldsSentinel(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testRNG())

	var dishes []catalog.Dish
	for _, d := range generatorCatalog() {
		if d.MealType != "dinner" {
			dishes = append(dishes, d)
		}
	}

	plan := g.Generate(testProfile(), dishes, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	for i, day := range plan.Days {
		dinner := day.Meals[2]
		if !dinner.IsSentinel() {
			t.Fatalf("day %d: expected sentinel dinner, got %s", i, dinner.Name)
		}
		if dinner.Name != SentinelDishName {
			t.Errorf("day %d: sentinel name = %q", i, dinner.Name)
		}
		if dinner.Status != StatusPending {
			t.Errorf("day %d: sentinel status = %s", i, dinner.Status)
		}
		if dinner.Nutrition.Calories != 0 {
			t.Errorf("day %d: sentinel must carry zero nutrition", i)
		}
	}
}

package mealplan

import (
	"testing"
	"time"
)

func reconcileFixture() *Plan {
	return &Plan{
		StartDate: "2024-03-11",
		EndDate:   "2024-03-12",
		Days: []PlanDay{
			{Date: "2024-03-11", Meals: []PlannedMeal{
				fixedMeal(MealBreakfast, "oats", 400, 20, 50, 10),
				fixedMeal(MealLunch, "chicken-rice", 600, 40, 60, 15),
			}},
			{Date: "2024-03-12", Meals: []PlannedMeal{
				fixedMeal(MealBreakfast, "eggs", 350, 25, 5, 20),
				fixedMeal(MealLunch, "salmon", 550, 38, 30, 25),
			}},
		},
	}
}

func TestReconcileStatuses(t *testing.T) {
	plan := reconcileFixture()
	now := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	logs := []LogRef{
		{DishID: "oats", MealType: MealBreakfast, MealDate: "2024-03-11"},
		{DishID: "eggs", MealType: MealBreakfast, MealDate: "2024-03-12"},
	}

	Reconcile(plan, logs, now)

	if got := plan.Days[0].Meals[0].Status; got != StatusAdded {
		t.Errorf("logged yesterday meal = %s, want added", got)
	}
	if got := plan.Days[0].Meals[1].Status; got != StatusMissed {
		t.Errorf("unlogged yesterday meal = %s, want missed", got)
	}
	if got := plan.Days[1].Meals[0].Status; got != StatusAdded {
		t.Errorf("logged today meal = %s, want added", got)
	}
	if got := plan.Days[1].Meals[1].Status; got != StatusPending {
		t.Errorf("unlogged today meal = %s, want pending", got)
	}
}

func TestReconcileRequiresExactSlotMatch(t *testing.T) {
	plan := reconcileFixture()
	now := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	logs := []LogRef{
		// Right dish, wrong date and wrong slot respectively.
		{DishID: "oats", MealType: MealBreakfast, MealDate: "2024-03-10"},
		{DishID: "chicken-rice", MealType: MealDinner, MealDate: "2024-03-11"},
	}

	Reconcile(plan, logs, now)

	if got := plan.Days[0].Meals[0].Status; got != StatusMissed {
		t.Errorf("wrong-date log must not mark the meal, got %s", got)
	}
	if got := plan.Days[0].Meals[1].Status; got != StatusMissed {
		t.Errorf("wrong-slot log must not mark the meal, got %s", got)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	plan := reconcileFixture()
	now := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	logs := []LogRef{{DishID: "oats", MealType: MealBreakfast, MealDate: "2024-03-11"}}

	Reconcile(plan, logs, now)
	first := make([]Status, 0, 4)
	for _, day := range plan.Days {
		for _, m := range day.Meals {
			first = append(first, m.Status)
		}
	}

	Reconcile(plan, logs, now)
	i := 0
	for _, day := range plan.Days {
		for _, m := range day.Meals {
			if m.Status != first[i] {
				t.Fatalf("status drifted on second run: %s vs %s", m.Status, first[i])
			}
			i++
		}
	}
}

func TestReconcileNilPlan(t *testing.T) {
	Reconcile(nil, []LogRef{{DishID: "oats"}}, time.Now())
}

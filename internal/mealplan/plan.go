package mealplan

import (
	"fmt"
	"time"

	"nutriplan/internal/catalog"
)

// MealType identifies a slot within a single plan day.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// Status is the derived state of a planned meal relative to the meal log.
// It is never stored independently of the log cross-reference.
type Status string

const (
	StatusPending Status = "pending"
	StatusAdded   Status = "added"
	StatusMissed  Status = "missed"
)

// SentinelDishName marks a slot no eligible dish could fill. Callers must
// surface it as a plan-quality issue, not a crash.
const SentinelDishName = "Meal not found"

// PlannedMeal is one filled slot: the selected dish's fields merged with the
// slot type, derived status, and the suggested serving size in grams.
type PlannedMeal struct {
	Type MealType `json:"type"`
	catalog.Dish
	Status      Status            `json:"status"`
	ServingSize float64           `json:"servingSize"`
	Nutrition   catalog.Nutrition `json:"nutrition"`
}

// IsSentinel reports whether this slot could not be filled.
func (m PlannedMeal) IsSentinel() bool {
	return m.Name == SentinelDishName
}

func sentinelMeal(t MealType) PlannedMeal {
	return PlannedMeal{
		Type:   t,
		Dish:   catalog.Dish{Name: SentinelDishName, Ingredients: []catalog.Ingredient{}},
		Status: StatusPending,
	}
}

// PlanDay holds one local calendar date and its meal slots.
type PlanDay struct {
	Date  string        `json:"date"`
	Meals []PlannedMeal `json:"meals"`
}

// Plan is the generated multi-day meal plan.
type Plan struct {
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Days      []PlanDay `json:"days"`
}

// LocalDate formats t as YYYY-MM-DD from its local calendar components.
// Slicing a UTC ISO timestamp shifts the day across time zones; this does not.
func LocalDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

func addDays(t time.Time, days int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, t.Location())
}

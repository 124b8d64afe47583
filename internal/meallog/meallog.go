package meallog

import (
	"strings"

	"nutriplan/internal/catalog"
)

// Entry is one logged meal. MealDate is a local YYYY-MM-DD date string.
type Entry struct {
	ID          int64             `json:"id"`
	ProfileID   string            `json:"profile_id"`
	DishID      string            `json:"dish_id"`
	Name        string            `json:"name"`
	MealType    string            `json:"meal_type"`
	MealDate    string            `json:"meal_date"`
	ServingSize float64           `json:"serving_size"`
	Nutrition   catalog.Nutrition `json:"nutrition"`
}

// NormalizeName canonicalizes a dish name for duplicate detection:
// lowercase with whitespace runs collapsed.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

package profile

import "errors"

// ErrNotFound is returned when no profile exists for the requested id.
var ErrNotFound = errors.New("profile not found")

// Profile holds a user's nutritional targets and planning preferences.
// Targets are daily values. The core planner treats this record as read-only.
type Profile struct {
	ID               string   `json:"id"`
	CalorieNeeds     float64  `json:"calorie_needs"`
	ProteinNeeded    float64  `json:"protein_needed"`
	CarbsNeeded      float64  `json:"carbs_needed"`
	FatsNeeded       float64  `json:"fats_needed"`
	Goal             string   `json:"goal"`
	EatingStyle      string   `json:"eating_style"`
	Allergens        []string `json:"allergens"`
	HealthConditions []string `json:"health_conditions"`
	Timeframe        int      `json:"timeframe"`
	MealsPerDay      int      `json:"meals_per_day"`
}

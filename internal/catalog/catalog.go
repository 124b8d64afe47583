package catalog

import "errors"

// ErrNotFound is returned when a requested catalog record does not exist.
var ErrNotFound = errors.New("not found")

// Nutrition holds macro totals. All values are non-negative.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the component-wise sum of two nutrition values.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

// Scale returns the nutrition multiplied by factor, clamped at zero.
func (n Nutrition) Scale(factor float64) Nutrition {
	return Nutrition{
		Calories: clampNonNegative(n.Calories * factor),
		Protein:  clampNonNegative(n.Protein * factor),
		Carbs:    clampNonNegative(n.Carbs * factor),
		Fat:      clampNonNegative(n.Fat * factor),
	}
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Ingredient is a single component of a dish. Amount is the authored basis
// quantity in grams; Nutrition reports totals at that amount. When a user
// overrides the serving of one ingredient, CustomAmount is set and
// CurrentAmount carries the override in grams.
type Ingredient struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Amount        float64   `json:"amount"`
	Nutrition     Nutrition `json:"nutrition"`
	Allergen      string    `json:"allergen,omitempty"`
	IsRice        bool      `json:"is_rice,omitempty"`
	CustomAmount  bool      `json:"custom_amount,omitempty"`
	CurrentAmount float64   `json:"current_amount,omitempty"`
}

// Dish is a catalog entry. The tag fields (MealType, Goal, EatingStyle,
// HealthCondition) are kept as authored; they arrive in inconsistent shapes
// from upstream and are normalized through Tokens/LooseList at use sites.
type Dish struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	MealType        string       `json:"meal_type"`
	Goal            string       `json:"goal,omitempty"`
	EatingStyle     string       `json:"eating_style,omitempty"`
	HealthCondition string       `json:"health_condition,omitempty"`
	Ingredients     []Ingredient `json:"ingredients"`
	Embedding       []float32    `json:"-"`
}

package mealplan

import (
	"nutriplan/internal/catalog"
)

// Config carries the planner's tunable constants. The repair thresholds and
// high-protein cutoffs are heuristics, so they live here rather than as
// literals in the algorithm.
type Config struct {
	BaseUnit float64

	MaxRepeatsPerWeek      int
	MinDaysBetweenSameDish int

	// Daily calorie tolerance band as a fraction of the target.
	CalorieTolerance float64

	// Minimum daily protein floor used by the repair pass.
	ProteinDayFloor float64

	// Weekly protein shortfall slack: max(SlackGrams, SlackFraction*target).
	WeeklyProteinSlackGrams    float64
	WeeklyProteinSlackFraction float64

	ServingMin float64
	ServingMax float64

	// High-protein sub-pool thresholds in grams per meal type.
	HighProteinBreakfast float64
	HighProteinLunch     float64
	HighProteinDinner    float64
	HighProteinSnack     float64

	// Candidates within this score distance of each other are considered
	// tied and shuffled to promote variety across regenerations.
	ScoreBand float64

	TopPickWindow     int
	RelaxedPickWindow int

	// Fraction of the daily targets reserved for each snack slot.
	SnackShare float64
}

// DefaultConfig returns the planner defaults.
func DefaultConfig() Config {
	return Config{
		BaseUnit:                   catalog.DefaultBaseUnit,
		MaxRepeatsPerWeek:          2,
		MinDaysBetweenSameDish:     2,
		CalorieTolerance:           0.15,
		ProteinDayFloor:            10,
		WeeklyProteinSlackGrams:    5,
		WeeklyProteinSlackFraction: 0.05,
		ServingMin:                 30,
		ServingMax:                 700,
		HighProteinBreakfast:       20,
		HighProteinLunch:           20,
		HighProteinDinner:          30,
		HighProteinSnack:           10,
		ScoreBand:                  0.05,
		TopPickWindow:              5,
		RelaxedPickWindow:          3,
		SnackShare:                 0.10,
	}
}

type goalKind int

const (
	goalDefault goalKind = iota
	goalWeightLoss
	goalAthletic
	goalMuscle
)

// classifyGoal maps the profile's free-text goal tags onto the planner's
// goal families.
func classifyGoal(goal string) goalKind {
	switch {
	case catalog.HasToken(goal, "muscle") || catalog.HasToken(goal, "bulk") || catalog.HasToken(goal, "bulking"):
		return goalMuscle
	case catalog.HasToken(goal, "athletic") || catalog.HasToken(goal, "athlete") || catalog.HasToken(goal, "endurance"):
		return goalAthletic
	case catalog.HasToken(goal, "loss") || catalog.HasToken(goal, "lose") || catalog.HasToken(goal, "cutting"):
		return goalWeightLoss
	default:
		return goalDefault
	}
}

// calorieMaxFactor bounds how far above the per-meal calorie target a
// candidate may sit before it is rejected outright.
func calorieMaxFactor(kind goalKind) float64 {
	switch kind {
	case goalWeightLoss:
		return 1.25
	case goalAthletic, goalMuscle:
		return 1.5
	default:
		return 1.4
	}
}

// proteinGoalFloor is the per-meal protein minimum for a goal family.
func proteinGoalFloor(kind goalKind) float64 {
	switch kind {
	case goalWeightLoss:
		return 15
	case goalAthletic:
		return 20
	case goalMuscle:
		return 25
	default:
		return 15
	}
}

type scoreWeights struct {
	calories, protein, carbs, fat float64
}

func goalWeights(kind goalKind) scoreWeights {
	switch kind {
	case goalMuscle, goalAthletic:
		return scoreWeights{calories: 0.20, protein: 0.50, carbs: 0.15, fat: 0.15}
	case goalWeightLoss:
		return scoreWeights{calories: 0.40, protein: 0.30, carbs: 0.15, fat: 0.15}
	default:
		return scoreWeights{calories: 0.25, protein: 0.25, carbs: 0.25, fat: 0.25}
	}
}

func (c Config) highProteinThreshold(t MealType) float64 {
	switch t {
	case MealBreakfast:
		return c.HighProteinBreakfast
	case MealLunch:
		return c.HighProteinLunch
	case MealDinner:
		return c.HighProteinDinner
	default:
		return c.HighProteinSnack
	}
}

package mealplan

import (
	"math"
	"math/rand"
	"sort"

	"nutriplan/internal/catalog"
	"nutriplan/internal/profile"
)

// Candidate is a dish that survived eligibility and nutrition bounds for a
// meal slot, with its closeness score against the per-meal targets.
type Candidate struct {
	Dish      catalog.Dish
	Nutrition catalog.Nutrition
	Score     float64
}

// Pool is the filtered, scored, ordered candidate list for one meal type,
// plus the high-protein subset used by the repair passes.
type Pool struct {
	MealType    MealType
	Target      catalog.Nutrition
	Candidates  []Candidate
	HighProtein []Candidate
}

// closenessScore measures how close value is to target in [0,1]. A zero
// target is a perfect match only when the value is also zero; otherwise the
// nutrient scores zero instead of dividing by zero.
func closenessScore(value, target float64) float64 {
	if target == 0 {
		if value == 0 {
			return 1
		}
		return 0
	}
	return math.Max(0, 1-math.Abs(value-target)/target)
}

func scoreDish(n, target catalog.Nutrition, w scoreWeights) float64 {
	return w.calories*closenessScore(n.Calories, target.Calories) +
		w.protein*closenessScore(n.Protein, target.Protein) +
		w.carbs*closenessScore(n.Carbs, target.Carbs) +
		w.fat*closenessScore(n.Fat, target.Fat)
}

// buildPool filters the catalog down to safe, type-matching dishes within
// the hard nutrition bounds, scores them against the per-meal targets, and
// orders them by score with randomized ties inside the score band.
func buildPool(p profile.Profile, dishes []catalog.Dish, mealType MealType,
	target catalog.Nutrition, cfg Config, rng *rand.Rand) Pool {

	kind := classifyGoal(p.Goal)
	weights := goalWeights(kind)
	maxCalories := target.Calories * calorieMaxFactor(kind)
	minProtein := math.Max(proteinGoalFloor(kind), math.Min(10, target.Protein))

	pool := Pool{MealType: mealType, Target: target}
	for _, d := range dishes {
		if !catalog.HasToken(d.MealType, string(mealType)) {
			continue
		}
		if !IsDishSafe(p, d) {
			continue
		}
		n := catalog.BaseNutrition(d)
		if maxCalories > 0 && n.Calories > maxCalories {
			continue
		}
		if n.Protein < minProtein {
			continue
		}
		pool.Candidates = append(pool.Candidates, Candidate{
			Dish:      d,
			Nutrition: n,
			Score:     scoreDish(n, target, weights),
		})
	}

	sort.SliceStable(pool.Candidates, func(i, j int) bool {
		return pool.Candidates[i].Score > pool.Candidates[j].Score
	})
	shuffleScoreBands(pool.Candidates, cfg.ScoreBand, rng)

	threshold := cfg.highProteinThreshold(mealType)
	for _, c := range pool.Candidates {
		if c.Nutrition.Protein >= threshold {
			pool.HighProtein = append(pool.HighProtein, c)
		}
	}
	return pool
}

// shuffleScoreBands randomizes the order of candidates whose scores sit
// within band of each other, so regenerations vary without disturbing the
// overall ranking.
func shuffleScoreBands(candidates []Candidate, band float64, rng *rand.Rand) {
	start := 0
	for i := 1; i <= len(candidates); i++ {
		if i == len(candidates) || candidates[start].Score-candidates[i].Score > band {
			group := candidates[start:i]
			rng.Shuffle(len(group), func(a, b int) {
				group[a], group[b] = group[b], group[a]
			})
			start = i
		}
	}
}

// perMealTargets splits the profile's daily targets across the day's slots.
// Each snack slot reserves SnackShare of the day; the three main meals split
// the remainder equally. Snack reservations are capped at 40% of the day so
// main meals keep a workable budget.
func perMealTargets(p profile.Profile, cfg Config) map[MealType]catalog.Nutrition {
	mealsPerDay := p.MealsPerDay
	if mealsPerDay < 3 {
		mealsPerDay = 3
	}
	snacks := mealsPerDay - 3

	snackShare := cfg.SnackShare
	if total := snackShare * float64(snacks); total > 0.4 {
		snackShare = 0.4 / float64(snacks)
	}
	mainShare := (1 - snackShare*float64(snacks)) / 3

	daily := catalog.Nutrition{
		Calories: p.CalorieNeeds,
		Protein:  p.ProteinNeeded,
		Carbs:    p.CarbsNeeded,
		Fat:      p.FatsNeeded,
	}

	targets := map[MealType]catalog.Nutrition{
		MealBreakfast: daily.Scale(mainShare),
		MealLunch:     daily.Scale(mainShare),
		MealDinner:    daily.Scale(mainShare),
	}
	if snacks > 0 {
		targets[MealSnack] = daily.Scale(snackShare)
	}
	return targets
}

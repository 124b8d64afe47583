package mealplan

import (
	"math"

	"nutriplan/internal/catalog"
)

// suggestedServing derives a serving size in grams for a dish against the
// per-meal targets. Each nutrient with a non-zero per-gram rate yields an
// independent size estimate (target / rate); the estimates are averaged.
// For muscle and athletic goals the protein-derived estimate wins outright
// when it sits within a 0.8x-1.5x band of the average; otherwise the average
// is nudged halfway toward 90% of the protein estimate. The result is
// clamped to [ServingMin, ServingMax] and rounded to one decimal.
func (g *Generator) suggestedServing(d catalog.Dish, target catalog.Nutrition, kind goalKind) float64 {
	rates, _ := catalog.DishPerGram(d)

	var estimates []float64
	proteinEstimate := 0.0
	appendEstimate := func(t, rate float64) float64 {
		if rate <= 0 || t <= 0 {
			return 0
		}
		est := t / rate
		estimates = append(estimates, est)
		return est
	}
	appendEstimate(target.Calories, rates.Calories)
	proteinEstimate = appendEstimate(target.Protein, rates.Protein)
	appendEstimate(target.Carbs, rates.Carbs)
	appendEstimate(target.Fat, rates.Fat)

	if len(estimates) == 0 {
		return g.cfg.BaseUnit
	}

	var sum float64
	for _, e := range estimates {
		sum += e
	}
	size := sum / float64(len(estimates))

	if (kind == goalMuscle || kind == goalAthletic) && proteinEstimate > 0 {
		if proteinEstimate >= 0.8*size && proteinEstimate <= 1.5*size {
			size = proteinEstimate
		} else {
			size += (0.9*proteinEstimate - size) / 2
		}
	}

	size = math.Max(g.cfg.ServingMin, math.Min(g.cfg.ServingMax, size))
	return math.Round(size*10) / 10
}

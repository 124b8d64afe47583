package catalog

import "math"

// DefaultBaseUnit is the serving basis (grams) dish nutrition is authored at.
const DefaultBaseUnit = 100

// BaseNutrition sums each ingredient's nutrient totals as authored. It does
// not rescale by serving size; that is the caller's job via ScaledNutrition.
func BaseNutrition(d Dish) Nutrition {
	var total Nutrition
	for _, ing := range d.Ingredients {
		total = total.Add(ing.Nutrition)
	}
	return total
}

// IngredientPerGram returns an ingredient's per-gram nutrient rates. A zero
// stored amount yields zero rates and warn=true rather than NaN/Inf.
func IngredientPerGram(ing Ingredient) (rates Nutrition, warn bool) {
	if ing.Amount <= 0 {
		return Nutrition{}, true
	}
	return ing.Nutrition.Scale(1 / ing.Amount), false
}

// DishPerGram returns dish-level per-gram rates derived from the base totals
// and the summed ingredient amounts. warn is true when any ingredient carries
// a zero stored amount or the dish has no mass at all.
func DishPerGram(d Dish) (rates Nutrition, warn bool) {
	var grams float64
	for _, ing := range d.Ingredients {
		if ing.Amount <= 0 {
			warn = true
			continue
		}
		grams += ing.Amount
	}
	if grams <= 0 {
		return Nutrition{}, true
	}
	return BaseNutrition(d).Scale(1 / grams), warn
}

// ScaledNutrition computes the dish nutrition displayed at servingSize grams.
// Each ingredient's stored-amount nutrition is scaled by servingSize/baseUnit
// and summed; an individually overridden ingredient contributes from its own
// amount instead, with the delta (custom - proportional) added on top of the
// dish-level scaled total.
func ScaledNutrition(d Dish, servingSize, baseUnit float64) Nutrition {
	if baseUnit <= 0 {
		baseUnit = DefaultBaseUnit
	}
	factor := servingSize / baseUnit
	total := BaseNutrition(d).Scale(factor)

	for _, ing := range d.Ingredients {
		if !ing.CustomAmount {
			continue
		}
		rates, warn := IngredientPerGram(ing)
		if warn {
			continue
		}
		proportional := ing.Nutrition.Scale(factor)
		custom := rates.Scale(ing.CurrentAmount)
		total = Nutrition{
			Calories: clampNonNegative(total.Calories + custom.Calories - proportional.Calories),
			Protein:  clampNonNegative(total.Protein + custom.Protein - proportional.Protein),
			Carbs:    clampNonNegative(total.Carbs + custom.Carbs - proportional.Carbs),
			Fat:      clampNonNegative(total.Fat + custom.Fat - proportional.Fat),
		}
	}
	return total
}

// DisplayNutrition returns an ingredient's nutrition at the given scale
// factor, ceiled per nutrient so displayed values never under-report.
func DisplayNutrition(ing Ingredient, factor float64) Nutrition {
	scaled := ing.Nutrition.Scale(factor)
	return Nutrition{
		Calories: math.Ceil(scaled.Calories),
		Protein:  math.Ceil(scaled.Protein),
		Carbs:    math.Ceil(scaled.Carbs),
		Fat:      math.Ceil(scaled.Fat),
	}
}

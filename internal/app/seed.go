package app

import (
	"context"
	"fmt"

	"nutriplan/internal/catalog"
	"nutriplan/internal/profile"
)

// SeedDemo loads a small demo catalog and profile so the server has
// something to plan against on a fresh database.
func (a *App) SeedDemo(ctx context.Context) error {
	demo := &profile.Profile{
		ID:            "demo",
		CalorieNeeds:  2200,
		ProteinNeeded: 140,
		CarbsNeeded:   220,
		FatsNeeded:    70,
		Goal:          "muscle gain",
		EatingStyle:   "balanced",
		Timeframe:     7,
		MealsPerDay:   4,
	}
	if err := a.profileRepo.Upsert(ctx, demo); err != nil {
		return err
	}

	for _, d := range demoDishes() {
		if err := a.catalogRepo.Save(ctx, d); err != nil {
			return fmt.Errorf("seeding dish %s: %w", d.Name, err)
		}
	}
	return nil
}

func demoDishes() []catalog.Dish {
	ing := func(id, name string, amount, cal, prot, carbs, fat float64) catalog.Ingredient {
		return catalog.Ingredient{
			ID: id, Name: name, Amount: amount,
			Nutrition: catalog.Nutrition{Calories: cal, Protein: prot, Carbs: carbs, Fat: fat},
		}
	}
	return []catalog.Dish{
		{
			ID: "d-oats", Name: "Protein Oatmeal Bowl", MealType: "breakfast",
			Goal: "muscle", Ingredients: []catalog.Ingredient{
				ing("i-oats", "Rolled Oats", 80, 300, 10, 54, 6),
				ing("i-whey", "Whey Protein", 30, 120, 24, 3, 2),
				ing("i-banana", "Banana", 100, 89, 1, 23, 0),
			},
		},
		{
			ID: "d-eggs", Name: "Scrambled Eggs on Toast", MealType: "breakfast",
			Ingredients: []catalog.Ingredient{
				ing("i-eggs", "Eggs", 150, 215, 19, 2, 15),
				ing("i-toast", "Whole Grain Bread", 60, 150, 6, 26, 2),
			},
		},
		{
			ID: "d-chicken-rice", Name: "Grilled Chicken with Rice", MealType: "lunch dinner",
			Goal: "muscle athletic", Ingredients: []catalog.Ingredient{
				ing("i-chicken", "Chicken Breast", 180, 297, 56, 0, 6),
				{ID: "i-rice", Name: "White Rice", Amount: 150, IsRice: true,
					Nutrition: catalog.Nutrition{Calories: 195, Protein: 4, Carbs: 42, Fat: 0}},
				ing("i-broccoli", "Broccoli", 100, 34, 3, 7, 0),
			},
		},
		{
			ID: "d-salmon", Name: "Baked Salmon with Quinoa", MealType: "dinner",
			Ingredients: []catalog.Ingredient{
				{ID: "i-salmon", Name: "Salmon Fillet", Amount: 170, Allergen: "fish",
					Nutrition: catalog.Nutrition{Calories: 353, Protein: 35, Carbs: 0, Fat: 22}},
				ing("i-quinoa", "Quinoa", 120, 144, 5, 25, 2),
			},
		},
		{
			ID: "d-lentil", Name: "Lentil Curry", MealType: "lunch dinner",
			EatingStyle: "vegetarian", Ingredients: []catalog.Ingredient{
				ing("i-lentils", "Red Lentils", 150, 174, 14, 30, 1),
				ing("i-coconut", "Coconut Milk", 80, 157, 2, 2, 16),
				{ID: "i-rice2", Name: "Basmati Rice", Amount: 120, IsRice: true,
					Nutrition: catalog.Nutrition{Calories: 156, Protein: 3, Carbs: 34, Fat: 0}},
			},
		},
		{
			ID: "d-yogurt", Name: "Greek Yogurt with Berries", MealType: "snack",
			Ingredients: []catalog.Ingredient{
				{ID: "i-yogurt", Name: "Greek Yogurt", Amount: 200, Allergen: "dairy",
					Nutrition: catalog.Nutrition{Calories: 146, Protein: 20, Carbs: 8, Fat: 4}},
				ing("i-berries", "Mixed Berries", 80, 46, 1, 11, 0),
			},
		},
		{
			ID: "d-nuts", Name: "Trail Mix", MealType: "snack",
			Ingredients: []catalog.Ingredient{
				{ID: "i-almonds", Name: "Almonds", Amount: 30, Allergen: "nuts",
					Nutrition: catalog.Nutrition{Calories: 174, Protein: 6, Carbs: 6, Fat: 15}},
				ing("i-raisins", "Raisins", 20, 60, 1, 16, 0),
			},
		},
		{
			ID: "d-cottage", Name: "Cottage Cheese Power Bowl", MealType: "snack",
			Goal: "muscle", Ingredients: []catalog.Ingredient{
				{ID: "i-cottage", Name: "Cottage Cheese", Amount: 250, Allergen: "dairy",
					Nutrition: catalog.Nutrition{Calories: 206, Protein: 28, Carbs: 8, Fat: 6}},
				ing("i-pineapple", "Pineapple Chunks", 60, 30, 0, 8, 0),
			},
		},
		{
			ID: "d-shrimp", Name: "Shrimp Stir Fry", MealType: "dinner",
			Ingredients: []catalog.Ingredient{
				{ID: "i-shrimp", Name: "Shrimp", Amount: 150, Allergen: "shellfish",
					Nutrition: catalog.Nutrition{Calories: 149, Protein: 29, Carbs: 1, Fat: 2}},
				ing("i-veg", "Stir Fry Vegetables", 150, 60, 3, 11, 1),
				ing("i-noodles", "Rice Noodles", 100, 192, 3, 44, 0),
			},
		},
	}
}

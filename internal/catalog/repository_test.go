package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriplan/internal/testutil"
)

func storedDish() Dish {
	return Dish{
		ID:              "chicken-rice",
		Name:            "Chicken and Rice",
		Description:     "Grilled chicken over jasmine rice",
		MealType:        "lunch dinner",
		Goal:            "muscle gain",
		EatingStyle:     "omnivore",
		HealthCondition: "",
		Embedding:       []float32{0.1, 0.2, 0.3},
		Ingredients: []Ingredient{
			{ID: "chicken-rice-1", Name: "Chicken Breast", Amount: 150,
				Nutrition: Nutrition{Calories: 248, Protein: 46.5, Carbs: 0, Fat: 5.4}},
			{ID: "chicken-rice-2", Name: "Jasmine Rice", Amount: 180,
				Nutrition: Nutrition{Calories: 234, Protein: 4.7, Carbs: 50.9, Fat: 0.5},
				IsRice:    true},
		},
	}
}

func TestRepositorySaveAndGet(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	want := storedDish()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.MealType, got.MealType)
	assert.Equal(t, want.Embedding, got.Embedding)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "Chicken Breast", got.Ingredients[0].Name)
	assert.True(t, got.Ingredients[1].IsRice)
	assert.InDelta(t, 46.5, got.Ingredients[0].Nutrition.Protein, 1e-9)
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositorySaveReplacesIngredients(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	d := storedDish()
	require.NoError(t, repo.Save(ctx, d))

	d.Ingredients = []Ingredient{
		{ID: "chicken-rice-3", Name: "Brown Rice", Amount: 180,
			Nutrition: Nutrition{Calories: 216, Protein: 5, Carbs: 45, Fat: 1.8},
			IsRice:    true},
	}
	require.NoError(t, repo.Save(ctx, d))

	got, err := repo.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Brown Rice", got.Ingredients[0].Name)
}

func TestRepositoryListOrderedByName(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	first := storedDish()
	second := storedDish()
	second.ID = "avocado-toast"
	second.Name = "Avocado Toast"
	second.Embedding = nil
	second.Ingredients = []Ingredient{{ID: "avocado-toast-1", Name: "Sourdough", Amount: 80}}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	dishes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, "Avocado Toast", dishes[0].Name)
	assert.Equal(t, "Chicken and Rice", dishes[1].Name)
	require.Len(t, dishes[1].Ingredients, 2)
}

func TestRepositoryListSkipsCorruptEmbedding(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storedDish()))
	_, err := db.ExecContext(ctx, `UPDATE dishes SET embedding = ? WHERE id = ?`,
		[]byte{1, 2, 3}, "chicken-rice")
	require.NoError(t, err)

	dishes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Nil(t, dishes[0].Embedding)
}

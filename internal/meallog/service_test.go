package meallog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriplan/internal/testutil"
)

func TestServiceLogInsertsNewEntry(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Log(ctx, testEntry("Oatmeal", "Breakfast", "2024-03-10"))
	require.NoError(t, err)
	require.Positive(t, id)

	entries, err := repo.ListByProfile(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestServiceLogMergesSameMeal(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Log(ctx, testEntry("Oatmeal", "Breakfast", "2024-03-10"))
	require.NoError(t, err)

	// Same meal logged again under a sloppier name merges, not duplicates.
	again := testEntry("  oatmeal ", "Breakfast", "2024-03-10")
	second, err := svc.Log(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := repo.ListByProfile(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.InDelta(t, 300, entries[0].ServingSize, 1e-9)
	assert.InDelta(t, 800, entries[0].Nutrition.Calories, 1e-9)
	assert.InDelta(t, 40, entries[0].Nutrition.Protein, 1e-9)
}

func TestServiceLogKeepsDistinctSlotsApart(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Log(ctx, testEntry("Oatmeal", "Breakfast", "2024-03-10"))
	require.NoError(t, err)
	_, err = svc.Log(ctx, testEntry("Oatmeal", "Snack", "2024-03-10"))
	require.NoError(t, err)
	_, err = svc.Log(ctx, testEntry("Oatmeal", "Breakfast", "2024-03-11"))
	require.NoError(t, err)

	entries, err := repo.ListByProfile(ctx, "demo")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestServiceLogValidatesRequiredFields(t *testing.T) {
	svc := NewService(NewRepository(testutil.NewTestDB(t)))
	ctx := context.Background()

	cases := []Entry{
		{Name: "Oatmeal", MealType: "Breakfast", MealDate: "2024-03-10"},
		{ProfileID: "demo", MealType: "Breakfast", MealDate: "2024-03-10"},
		{ProfileID: "demo", Name: "Oatmeal", MealDate: "2024-03-10"},
		{ProfileID: "demo", Name: "Oatmeal", MealType: "Breakfast"},
	}
	for _, e := range cases {
		_, err := svc.Log(ctx, e)
		assert.Error(t, err)
	}
}

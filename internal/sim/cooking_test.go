package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleep-optimizer/internal/gamedata"
)

func fixturePot(t *testing.T, camp bool) *CookingState {
	t.Helper()
	return NewCookingState(fixtureStore(t), CookingSettings{RecipeType: gamedata.RecipeCurry}, camp)
}

func TestCookPicksBestRecipeThatFits(t *testing.T) {
	pot := fixturePot(t, false)
	rng := NewRand(1)
	pot.AddIngredients(gamedata.IngredientAmounts{12, 12, 0})

	// EGG_CURRY needs 20 ingredients and the pot holds 15.
	meal := pot.Cook(rng, MustParseTimeOfDay("08:00"))
	require.NotNil(t, meal.Recipe)
	assert.Equal(t, "APPLE_CURRY", meal.Recipe.Name)
	assert.Equal(t, gamedata.IngredientAmounts{5, 12, 0}, pot.Stock)

	pot.AddIngredients(gamedata.IngredientAmounts{5, 0, 0})
	pot.AddPotSize(5)
	meal = pot.Cook(rng, MustParseTimeOfDay("12:00"))
	require.NotNil(t, meal.Recipe)
	assert.Equal(t, "EGG_CURRY", meal.Recipe.Name)
	assert.Zero(t, pot.BonusPotSize, "pot bonus lasts one meal")
	assert.Len(t, pot.Meals, 2)
}

func TestCookFallsBackToMixedMeal(t *testing.T) {
	pot := fixturePot(t, false)
	pot.AddIngredients(gamedata.IngredientAmounts{3, 2.6, 0})

	meal := pot.Cook(NewRand(1), MustParseTimeOfDay("18:00"))
	assert.Nil(t, meal.Recipe)
	assert.Equal(t, "mixed meal", meal.Name())
	assert.Equal(t, gamedata.IngredientCounts{3, 2, 0}, meal.Ingredients)
	if !meal.Crit {
		assert.Equal(t, 3*90.0+2*115.0, meal.Strength)
	}
	assert.InDelta(t, 0.6, pot.Stock[1], 1e-9, "fractional stock stays in the pot")
}

func TestCookCritResetsChance(t *testing.T) {
	pot := fixturePot(t, false)
	pot.AddIngredients(gamedata.IngredientAmounts{7, 0, 0})
	pot.CritChance = 1

	meal := pot.Cook(NewRand(1), MustParseTimeOfDay("08:00"))
	assert.True(t, meal.Crit)
	assert.Equal(t, 2*float64(meal.Recipe.Value), meal.Strength)
	assert.Equal(t, baseCritChance, pot.CritChance)
}

func TestCookingPotLimits(t *testing.T) {
	assert.Equal(t, 15, fixturePot(t, false).PotSize)
	assert.Equal(t, 22, fixturePot(t, true).PotSize)

	pot := fixturePot(t, false)
	pot.AddCritChance(0.5)
	pot.AddCritChance(0.5)
	assert.Equal(t, maxCritChance, pot.CritChance)
}

package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/models"
)

func TestScaleRecipeNativeYield(t *testing.T) {
	f := setup(t)

	recipe := f.recipeWith(t, "Vanilla Sponge", 10, f.piece.ID,
		models.RecipeIngredient{ItemID: f.flour.ID, Quantity: 2, UnitID: f.kilo.ID},
		models.RecipeIngredient{ItemID: f.sugar.ID, Quantity: 800, UnitID: f.gram.ID},
		models.RecipeIngredient{ItemID: f.vanilla.ID, Quantity: 30, UnitID: f.milli.ID},
	)

	result, err := f.svc.ScaleRecipe(recipe.ID, 10, f.piece.ID)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.ScalingFactor, 1e-9)
	require.Len(t, result.ScaledIngredients, 3)
	for _, si := range result.ScaledIngredients {
		assert.InDelta(t, si.OriginalQuantity, si.ScaledQuantity, 1e-9)
	}
}

func TestScaleRecipeDouble(t *testing.T) {
	f := setup(t)

	recipe := f.recipeWith(t, "Vanilla Sponge", 10, f.piece.ID,
		models.RecipeIngredient{ItemID: f.flour.ID, Quantity: 2, UnitID: f.kilo.ID},
		models.RecipeIngredient{ItemID: f.sugar.ID, Quantity: 800, UnitID: f.gram.ID},
	)

	result, err := f.svc.ScaleRecipe(recipe.ID, 20, f.piece.ID)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, result.ScalingFactor, 1e-9)
	for _, si := range result.ScaledIngredients {
		assert.InDelta(t, si.OriginalQuantity*2, si.ScaledQuantity, 1e-9)
	}
	// Units stay the ingredient's own units
	assert.Equal(t, f.kilo.ID, result.ScaledIngredients[0].UnitID)
	assert.Equal(t, f.gram.ID, result.ScaledIngredients[1].UnitID)
}

func TestScaleRecipeDesiredYieldInOtherUnit(t *testing.T) {
	f := setup(t)

	// Recipe yields 2 kg of dough; ask for 3000 g
	recipe := f.recipeWith(t, "Bread Dough", 2, f.kilo.ID,
		models.RecipeIngredient{ItemID: f.flour.ID, Quantity: 1.2, UnitID: f.kilo.ID},
	)

	result, err := f.svc.ScaleRecipe(recipe.ID, 3000, f.gram.ID)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, result.ScalingFactor, 1e-9)
	assert.InDelta(t, 1.8, result.ScaledIngredients[0].ScaledQuantity, 1e-9)
}

func TestScaleRecipeNotFound(t *testing.T) {
	f := setup(t)

	_, err := f.svc.ScaleRecipe("no-such-recipe", 10, f.piece.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestScaleRecipeRejectsNonPositiveYield(t *testing.T) {
	f := setup(t)

	recipe := f.recipeWith(t, "Vanilla Sponge", 10, f.piece.ID,
		models.RecipeIngredient{ItemID: f.flour.ID, Quantity: 2, UnitID: f.kilo.ID},
	)

	_, err := f.svc.ScaleRecipe(recipe.ID, 0, f.piece.ID)
	assert.True(t, IsValidation(err))

	_, err = f.svc.ScaleRecipe(recipe.ID, -5, f.piece.ID)
	assert.True(t, IsValidation(err))
}

func TestScaleRecipeIngredientOrderPreserved(t *testing.T) {
	f := setup(t)

	recipe := f.recipeWith(t, "Layer Cake", 1, f.piece.ID,
		models.RecipeIngredient{ItemID: f.flour.ID, Quantity: 500, UnitID: f.gram.ID},
		models.RecipeIngredient{ItemID: f.sugar.ID, Quantity: 300, UnitID: f.gram.ID},
		models.RecipeIngredient{ItemID: f.vanilla.ID, Quantity: 10, UnitID: f.milli.ID},
	)

	result, err := f.svc.ScaleRecipe(recipe.ID, 3, f.piece.ID)
	require.NoError(t, err)
	require.Len(t, result.ScaledIngredients, 3)
	assert.Equal(t, f.flour.ID, result.ScaledIngredients[0].ItemID)
	assert.Equal(t, f.sugar.ID, result.ScaledIngredients[1].ItemID)
	assert.Equal(t, f.vanilla.ID, result.ScaledIngredients[2].ItemID)
}

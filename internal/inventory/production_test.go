package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/models"
)

func TestPlanProductionShortage(t *testing.T) {
	f := setup(t)
	f.stockOf(t, f.flour.ID, 3, f.kilo.ID)

	plan, err := f.svc.PlanProduction([]ProductionIngredient{
		{ItemID: f.flour.ID, Quantity: 5, UnitID: f.kilo.ID},
	}, 0, 0, 10)
	require.NoError(t, err)

	require.Len(t, plan.Shortages, 1)
	s := plan.Shortages[0]
	assert.Equal(t, f.flour.ID, s.ItemID)
	assert.Equal(t, "All Purpose Flour", s.ItemName)
	assert.InDelta(t, 5.0, s.Required, 1e-9)
	assert.InDelta(t, 3.0, s.Available, 1e-9)
	assert.Equal(t, "kg", s.RequiredUnit)
	assert.Equal(t, "kg", s.AvailableUnit)

	// Stock untouched
	assert.InDelta(t, 3.0, f.stockQuantity(t, f.flour.ID), 1e-9)
}

func TestPlanProductionAbsentStockIsZeroAvailability(t *testing.T) {
	f := setup(t)

	plan, err := f.svc.PlanProduction([]ProductionIngredient{
		{ItemID: f.vanilla.ID, Quantity: 20, UnitID: f.milli.ID},
	}, 0, 0, 1)
	require.NoError(t, err)

	require.Len(t, plan.Shortages, 1)
	assert.InDelta(t, 0.0, plan.Shortages[0].Available, 1e-9)
	assert.InDelta(t, 20.0, plan.Shortages[0].Required, 1e-9)
	assert.Equal(t, "ml", plan.Shortages[0].RequiredUnit)
}

func TestPlanProductionShortageComparedInStockUnit(t *testing.T) {
	f := setup(t)
	f.stockOf(t, f.sugar.ID, 2, f.kilo.ID)

	// 2500 g required against 2 kg available
	plan, err := f.svc.PlanProduction([]ProductionIngredient{
		{ItemID: f.sugar.ID, Quantity: 2500, UnitID: f.gram.ID},
	}, 0, 0, 1)
	require.NoError(t, err)

	require.Len(t, plan.Shortages, 1)
	assert.InDelta(t, 2.5, plan.Shortages[0].Required, 1e-9)
	assert.InDelta(t, 2.0, plan.Shortages[0].Available, 1e-9)
	assert.Equal(t, "kg", plan.Shortages[0].RequiredUnit)
}

func TestPlanProductionCosting(t *testing.T) {
	f := setup(t)
	f.stockOf(t, f.flour.ID, 20, f.kilo.ID)
	f.stockOf(t, f.sugar.ID, 20, f.kilo.ID)
	require.NoError(t, f.db.Model(&models.Item{}).Where("id = ?", f.flour.ID).
		Update("avg_price", 50.0).Error)
	require.NoError(t, f.db.Model(&models.Item{}).Where("id = ?", f.sugar.ID).
		Update("last_purchase_price", 45.0).Error)

	plan, err := f.svc.PlanProduction([]ProductionIngredient{
		{ItemID: f.flour.ID, Quantity: 2, UnitID: f.kilo.ID},
		{ItemID: f.sugar.ID, Quantity: 1, UnitID: f.kilo.ID},
	}, 100, 50, 10)
	require.NoError(t, err)
	require.Empty(t, plan.Shortages)

	// flour: avg price wins; sugar: avg 0 falls back to last purchase price
	assert.InDelta(t, 2*50+1*45, plan.IngredientCost, 1e-9)
	assert.InDelta(t, 145+100+50, plan.TotalCost, 1e-9)
	assert.InDelta(t, 295.0/10, plan.CostPerUnit, 1e-9)

	require.Len(t, plan.Items, 2)
	assert.InDelta(t, 50.0, plan.Items[0].UnitCost, 1e-9)
	assert.InDelta(t, 45.0, plan.Items[1].UnitCost, 1e-9)
}

func TestPlanProductionNeverPurchasedCostsZero(t *testing.T) {
	f := setup(t)
	f.stockOf(t, f.vanilla.ID, 500, f.milli.ID)

	plan, err := f.svc.PlanProduction([]ProductionIngredient{
		{ItemID: f.vanilla.ID, Quantity: 30, UnitID: f.milli.ID},
	}, 0, 0, 1)
	require.NoError(t, err)
	require.Empty(t, plan.Shortages)
	assert.InDelta(t, 0.0, plan.IngredientCost, 1e-9)
}

func TestCommitProductionShortageAbortsEntirely(t *testing.T) {
	f := setup(t)
	f.stockOf(t, f.flour.ID, 3, f.kilo.ID)
	f.stockOf(t, f.sugar.ID, 20, f.kilo.ID)

	recipe := f.recipeWith(t, "Bread", 10, f.piece.ID,
		models.RecipeIngredient{ItemID: f.flour.ID, Quantity: 5, UnitID: f.kilo.ID},
		models.RecipeIngredient{ItemID: f.sugar.ID, Quantity: 1, UnitID: f.kilo.ID},
	)

	production, shortages, err := f.svc.CommitProduction(ProductionInput{
		Date:             time.Now(),
		RecipeID:         recipe.ID,
		ProducedQuantity: 10,
		ProducedUnitID:   f.piece.ID,
		Ingredients: []ProductionIngredient{
			{ItemID: f.flour.ID, Quantity: 5, UnitID: f.kilo.ID},
			{ItemID: f.sugar.ID, Quantity: 1, UnitID: f.kilo.ID},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, production)
	require.Len(t, shortages, 1)

	// No partial commit: both stocks untouched, no production rows
	assert.InDelta(t, 3.0, f.stockQuantity(t, f.flour.ID), 1e-9)
	assert.InDelta(t, 20.0, f.stockQuantity(t, f.sugar.ID), 1e-9)
	var count int64
	f.db.Model(&models.Production{}).Count(&count)
	assert.Zero(t, count)
}

func TestCommitProductionSuccess(t *testing.T) {
	f := setup(t)
	f.stockOf(t, f.flour.ID, 10, f.kilo.ID)
	f.stockOf(t, f.sugar.ID, 5, f.kilo.ID)
	require.NoError(t, f.db.Model(&models.Item{}).Where("id = ?", f.flour.ID).
		Update("avg_price", 40.0).Error)

	recipe := f.recipeWith(t, "Bread", 10, f.piece.ID,
		models.RecipeIngredient{ItemID: f.flour.ID, Quantity: 2, UnitID: f.kilo.ID},
		models.RecipeIngredient{ItemID: f.sugar.ID, Quantity: 800, UnitID: f.gram.ID},
	)

	production, shortages, err := f.svc.CommitProduction(ProductionInput{
		Date:             time.Now(),
		RecipeID:         recipe.ID,
		ProducedQuantity: 10,
		ProducedUnitID:   f.piece.ID,
		LaborCost:        30,
		OverheadCost:     20,
		Ingredients: []ProductionIngredient{
			{ItemID: f.flour.ID, Quantity: 2, UnitID: f.kilo.ID},
			{ItemID: f.sugar.ID, Quantity: 800, UnitID: f.gram.ID},
		},
	})
	require.NoError(t, err)
	require.Empty(t, shortages)
	require.NotNil(t, production)

	// Stock decremented by the converted required quantity
	assert.InDelta(t, 8.0, f.stockQuantity(t, f.flour.ID), 1e-9)
	assert.InDelta(t, 4.2, f.stockQuantity(t, f.sugar.ID), 1e-9)

	// totalCost = sum(lineTotals) + labor + overhead; sugar never purchased
	assert.InDelta(t, 2*40+0+30+20, production.TotalCost, 1e-9)
	assert.InDelta(t, production.TotalCost/10, production.CostPerUnit, 1e-9)

	// Snapshot persisted
	var items []models.ProductionItem
	require.NoError(t, f.db.Where("production_id = ?", production.ID).Find(&items).Error)
	assert.Len(t, items, 2)
}

func TestCommitProductionRaceLoserAborts(t *testing.T) {
	f := setup(t)
	f.stockOf(t, f.flour.ID, 5, f.kilo.ID)

	recipe := f.recipeWith(t, "Bread", 10, f.piece.ID,
		models.RecipeIngredient{ItemID: f.flour.ID, Quantity: 4, UnitID: f.kilo.ID},
	)

	input := ProductionInput{
		Date:             time.Now(),
		RecipeID:         recipe.ID,
		ProducedQuantity: 10,
		ProducedUnitID:   f.piece.ID,
		Ingredients: []ProductionIngredient{
			{ItemID: f.flour.ID, Quantity: 4, UnitID: f.kilo.ID},
		},
	}

	_, shortages, err := f.svc.CommitProduction(input)
	require.NoError(t, err)
	require.Empty(t, shortages)

	// Second commit sees 1 kg left; availability check reports the
	// shortage before the conditional decrement is ever reached
	production, shortages, err := f.svc.CommitProduction(input)
	require.NoError(t, err)
	assert.Nil(t, production)
	require.Len(t, shortages, 1)
	assert.InDelta(t, 1.0, shortages[0].Available, 1e-9)

	// Stock never negative
	assert.InDelta(t, 1.0, f.stockQuantity(t, f.flour.ID), 1e-9)
}

func TestCommitProductionValidation(t *testing.T) {
	f := setup(t)

	_, _, err := f.svc.CommitProduction(ProductionInput{})
	assert.True(t, IsValidation(err))

	_, _, err = f.svc.CommitProduction(ProductionInput{
		Date:             time.Now(),
		RecipeID:         "no-such-recipe",
		ProducedQuantity: 1,
		ProducedUnitID:   f.piece.ID,
		Ingredients:      []ProductionIngredient{{ItemID: f.flour.ID, Quantity: 1, UnitID: f.kilo.ID}},
	})
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	recipe := f.recipeWith(t, "Bread", 10, f.piece.ID)
	_, _, err = f.svc.CommitProduction(ProductionInput{
		Date:             time.Now(),
		RecipeID:         recipe.ID,
		ProducedQuantity: 0,
		ProducedUnitID:   f.piece.ID,
		Ingredients:      []ProductionIngredient{{ItemID: f.flour.ID, Quantity: 1, UnitID: f.kilo.ID}},
	})
	assert.True(t, IsValidation(err))
}

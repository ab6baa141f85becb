package report

import (
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/database"
	"bakehouse/internal/models"
)

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return d.Add(12 * time.Hour)
}

func setup(t *testing.T) (*gorm.DB, *Reporter) {
	t.Helper()

	db, err := database.Init("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, NewReporter(db)
}

func TestProductionCostsAggregatesByRecipe(t *testing.T) {
	db, r := setup(t)

	piece := models.Unit{Name: "Piece", Symbol: "piece", Type: models.UnitTypeCount}
	require.NoError(t, db.Create(&piece).Error)

	bread := models.Recipe{Name: "Sourdough", YieldQuantity: 2, YieldUnitID: piece.ID}
	cake := models.Recipe{Name: "Sponge Cake", YieldQuantity: 1, YieldUnitID: piece.ID}
	require.NoError(t, db.Create(&bread).Error)
	require.NoError(t, db.Create(&cake).Error)

	runs := []models.Production{
		{Date: day("2026-08-01"), RecipeID: bread.ID, ProducedQuantity: 10, ProducedUnitID: piece.ID, TotalCost: 20, CostPerUnit: 2},
		{Date: day("2026-08-05"), RecipeID: bread.ID, ProducedQuantity: 20, ProducedUnitID: piece.ID, TotalCost: 60, CostPerUnit: 3},
		{Date: day("2026-08-10"), RecipeID: cake.ID, ProducedQuantity: 4, ProducedUnitID: piece.ID, TotalCost: 18, CostPerUnit: 4.5},
	}
	for i := range runs {
		require.NoError(t, db.Create(&runs[i]).Error)
	}

	summaries, err := r.ProductionCosts(day("2026-08-01"), day("2026-09-01"))
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Ordered by total cost descending
	assert.Equal(t, "Sourdough", summaries[0].RecipeName)
	assert.Equal(t, 2, summaries[0].Runs)
	assert.InDelta(t, 30.0, summaries[0].TotalProduced, 1e-9)
	assert.InDelta(t, 80.0, summaries[0].TotalCost, 1e-9)
	assert.InDelta(t, 2.5, summaries[0].AvgCostPerUnit, 1e-9)
	assert.InDelta(t, 2.0, summaries[0].MinCostPerUnit, 1e-9)
	assert.InDelta(t, 3.0, summaries[0].MaxCostPerUnit, 1e-9)

	assert.Equal(t, "Sponge Cake", summaries[1].RecipeName)
	assert.Equal(t, 1, summaries[1].Runs)
}

func TestProductionCostsHonorsDateRangeAndTrash(t *testing.T) {
	db, r := setup(t)

	piece := models.Unit{Name: "Piece", Symbol: "piece", Type: models.UnitTypeCount}
	require.NoError(t, db.Create(&piece).Error)
	bread := models.Recipe{Name: "Sourdough", YieldQuantity: 2, YieldUnitID: piece.ID}
	require.NoError(t, db.Create(&bread).Error)

	inRange := models.Production{Date: day("2026-08-10"), RecipeID: bread.ID, ProducedQuantity: 10, ProducedUnitID: piece.ID, TotalCost: 20, CostPerUnit: 2}
	tooEarly := models.Production{Date: day("2026-07-20"), RecipeID: bread.ID, ProducedQuantity: 5, ProducedUnitID: piece.ID, TotalCost: 10, CostPerUnit: 2}
	trashed := models.Production{Date: day("2026-08-12"), RecipeID: bread.ID, ProducedQuantity: 99, ProducedUnitID: piece.ID, TotalCost: 999, CostPerUnit: 10}
	for _, p := range []*models.Production{&inRange, &tooEarly, &trashed} {
		require.NoError(t, db.Create(p).Error)
	}
	require.NoError(t, db.Delete(&trashed).Error)

	summaries, err := r.ProductionCosts(day("2026-08-01"), day("2026-09-01"))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Runs)
	assert.InDelta(t, 20.0, summaries[0].TotalCost, 1e-9)
}

func TestSupplierSpend(t *testing.T) {
	db, r := setup(t)

	mill := models.Supplier{Name: "Millbrook Grains"}
	dairy := models.Supplier{Name: "Valley Dairy"}
	require.NoError(t, db.Create(&mill).Error)
	require.NoError(t, db.Create(&dairy).Error)

	purchases := []models.Purchase{
		{Date: day("2026-08-03"), SupplierID: mill.ID, TotalAmount: 100},
		{Date: day("2026-08-17"), SupplierID: mill.ID, TotalAmount: 50},
		{Date: day("2026-08-05"), SupplierID: dairy.ID, TotalAmount: 40},
	}
	for i := range purchases {
		require.NoError(t, db.Create(&purchases[i]).Error)
	}

	summaries, err := r.SupplierSpend(day("2026-08-01"), day("2026-09-01"))
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Millbrook Grains", summaries[0].SupplierName)
	assert.Equal(t, 2, summaries[0].Orders)
	assert.InDelta(t, 150.0, summaries[0].TotalSpend, 1e-9)
	assert.InDelta(t, 75.0, summaries[0].AvgOrder, 1e-9)

	assert.Equal(t, "Valley Dairy", summaries[1].SupplierName)
	assert.InDelta(t, 40.0, summaries[1].TotalSpend, 1e-9)
}

func TestItemSpend(t *testing.T) {
	db, r := setup(t)

	kilo := models.Unit{Name: "Kilogram", Symbol: "kg", Type: models.UnitTypeWeight}
	require.NoError(t, db.Create(&kilo).Error)

	flour := models.Item{Name: "Flour", Type: models.ItemTypeRawMaterial, BaseUnitID: kilo.ID}
	sugar := models.Item{Name: "Sugar", Type: models.ItemTypeRawMaterial, BaseUnitID: kilo.ID}
	require.NoError(t, db.Create(&flour).Error)
	require.NoError(t, db.Create(&sugar).Error)

	shop := models.Supplier{Name: "Local Grocery Store"}
	require.NoError(t, db.Create(&shop).Error)

	purchase := models.Purchase{Date: day("2026-08-03"), SupplierID: shop.ID, TotalAmount: 170}
	require.NoError(t, db.Create(&purchase).Error)

	lines := []models.PurchaseItem{
		{PurchaseID: purchase.ID, ItemID: flour.ID, Quantity: 100, UnitID: kilo.ID, UnitPrice: 1, LineTotal: 100},
		{PurchaseID: purchase.ID, ItemID: flour.ID, Quantity: 20, UnitID: kilo.ID, UnitPrice: 1, LineTotal: 20},
		{PurchaseID: purchase.ID, ItemID: sugar.ID, Quantity: 25, UnitID: kilo.ID, UnitPrice: 2, LineTotal: 50},
	}
	for i := range lines {
		require.NoError(t, db.Create(&lines[i]).Error)
	}

	summaries, err := r.ItemSpend(day("2026-08-01"), day("2026-09-01"))
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Flour", summaries[0].ItemName)
	assert.Equal(t, 2, summaries[0].Lines)
	assert.InDelta(t, 120.0, summaries[0].TotalSpend, 1e-9)

	assert.Equal(t, "Sugar", summaries[1].ItemName)
	assert.InDelta(t, 50.0, summaries[1].TotalSpend, 1e-9)
}

func TestStockOnHandSnapshot(t *testing.T) {
	db, r := setup(t)

	kilo := models.Unit{Name: "Kilogram", Symbol: "kg", Type: models.UnitTypeWeight}
	liter := models.Unit{Name: "Liter", Symbol: "L", Type: models.UnitTypeVolume}
	require.NoError(t, db.Create(&kilo).Error)
	require.NoError(t, db.Create(&liter).Error)

	flour := models.Item{Name: "Flour", Type: models.ItemTypeRawMaterial, BaseUnitID: kilo.ID, ReorderThreshold: 10, LastPurchasePrice: 1.5}
	milk := models.Item{Name: "Milk", Type: models.ItemTypeRawMaterial, BaseUnitID: liter.ID}
	empty := models.Item{Name: "Yeast", Type: models.ItemTypeRawMaterial, BaseUnitID: kilo.ID}
	trashed := models.Item{Name: "Margarine", Type: models.ItemTypeRawMaterial, BaseUnitID: kilo.ID}
	for _, it := range []*models.Item{&flour, &milk, &empty, &trashed} {
		require.NoError(t, db.Create(it).Error)
	}

	stocks := []models.Stock{
		{ItemID: flour.ID, Quantity: 25, UnitID: kilo.ID},
		{ItemID: milk.ID, Quantity: 8, UnitID: liter.ID},
		{ItemID: trashed.ID, Quantity: 3, UnitID: kilo.ID},
	}
	for i := range stocks {
		require.NoError(t, db.Create(&stocks[i]).Error)
	}
	require.NoError(t, db.Delete(&trashed).Error)

	entries, err := r.StockOnHand()
	require.NoError(t, err)
	// Yeast has no stock row, Margarine is in the trash
	require.Len(t, entries, 2)

	assert.Equal(t, "Flour", entries[0].ItemName)
	assert.InDelta(t, 25.0, entries[0].Quantity, 1e-9)
	assert.Equal(t, "kg", entries[0].UnitSymbol)
	assert.InDelta(t, 10.0, entries[0].ReorderThreshold, 1e-9)
	assert.InDelta(t, 1.5, entries[0].LastPurchasePrice, 1e-9)

	assert.Equal(t, "Milk", entries[1].ItemName)
	assert.Equal(t, "L", entries[1].UnitSymbol)
}

func TestEmptyRangeReturnsNoSummaries(t *testing.T) {
	_, r := setup(t)

	costs, err := r.ProductionCosts(day("2026-08-01"), day("2026-09-01"))
	require.NoError(t, err)
	assert.Empty(t, costs)

	spend, err := r.SupplierSpend(day("2026-08-01"), day("2026-09-01"))
	require.NoError(t, err)
	assert.Empty(t, spend)
}

package inventory

import (
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/database"
	"bakehouse/internal/models"
)

// fixture bundles the reference data most tests need
type fixture struct {
	db      *gorm.DB
	svc     *Service
	gram    models.Unit
	kilo    models.Unit
	milli   models.Unit
	liter   models.Unit
	piece   models.Unit
	sugar   models.Item
	flour   models.Item
	vanilla models.Item
	shop    models.Supplier
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Init("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{db: db, svc: NewService(db)}

	f.gram = models.Unit{Name: "Gram", Symbol: "g", Type: models.UnitTypeWeight}
	f.kilo = models.Unit{Name: "Kilogram", Symbol: "kg", Type: models.UnitTypeWeight}
	f.milli = models.Unit{Name: "Milliliter", Symbol: "ml", Type: models.UnitTypeVolume}
	f.liter = models.Unit{Name: "Liter", Symbol: "L", Type: models.UnitTypeVolume}
	f.piece = models.Unit{Name: "Piece", Symbol: "piece", Type: models.UnitTypeCount}
	for _, u := range []*models.Unit{&f.gram, &f.kilo, &f.milli, &f.liter, &f.piece} {
		require.NoError(t, db.Create(u).Error)
	}

	factors := []models.ConversionFactor{
		{FromUnitID: f.gram.ID, ToUnitID: f.kilo.ID, Factor: 0.001},
		{FromUnitID: f.milli.ID, ToUnitID: f.liter.ID, Factor: 0.001},
	}
	for i := range factors {
		require.NoError(t, db.Create(&factors[i]).Error)
	}

	f.sugar = models.Item{
		Name:             "Sugar",
		Type:             models.ItemTypeRawMaterial,
		BaseUnitID:       f.kilo.ID,
		ReorderThreshold: 5,
	}
	f.flour = models.Item{
		Name:             "All Purpose Flour",
		Type:             models.ItemTypeRawMaterial,
		BaseUnitID:       f.kilo.ID,
		ReorderThreshold: 10,
	}
	f.vanilla = models.Item{
		Name:       "Vanilla Essence",
		Type:       models.ItemTypeEssence,
		BaseUnitID: f.milli.ID,
	}
	for _, it := range []*models.Item{&f.sugar, &f.flour, &f.vanilla} {
		require.NoError(t, db.Create(it).Error)
	}

	f.shop = models.Supplier{Name: "Local Grocery Store", Address: "Chennai"}
	require.NoError(t, db.Create(&f.shop).Error)

	return f
}

// stockOf creates or replaces an item's stock row directly
func (f *fixture) stockOf(t *testing.T, itemID string, quantity float64, unitID string) {
	t.Helper()
	require.NoError(t, f.db.Where("item_id = ?", itemID).Delete(&models.Stock{}).Error)
	stock := models.Stock{ItemID: itemID, Quantity: quantity, UnitID: unitID}
	require.NoError(t, f.db.Create(&stock).Error)
}

// stockQuantity reads back an item's current stock quantity
func (f *fixture) stockQuantity(t *testing.T, itemID string) float64 {
	t.Helper()
	var stock models.Stock
	require.NoError(t, f.db.Where("item_id = ?", itemID).First(&stock).Error)
	return stock.Quantity
}

// recipeWith creates a recipe with the given yield and ingredient triples
func (f *fixture) recipeWith(t *testing.T, name string, yieldQty float64, yieldUnitID string, ingredients ...models.RecipeIngredient) models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		Name:          name,
		YieldQuantity: yieldQty,
		YieldUnitID:   yieldUnitID,
	}
	require.NoError(t, f.db.Create(&recipe).Error)
	for i := range ingredients {
		ingredients[i].RecipeID = recipe.ID
		ingredients[i].Position = i
		require.NoError(t, f.db.Create(&ingredients[i]).Error)
	}
	return recipe
}

package inventory

import (
	"github.com/jinzhu/gorm"

	"bakehouse/internal/models"
)

// ScaledIngredient carries one recipe ingredient before and after scaling.
// The unit is the ingredient's own unit, never the desired yield unit, so
// callers can show a before/after view.
type ScaledIngredient struct {
	ItemID           string  `json:"itemId"`
	ItemName         string  `json:"itemName"`
	UnitID           string  `json:"unitId"`
	UnitSymbol       string  `json:"unitSymbol"`
	OriginalQuantity float64 `json:"originalQuantity"`
	ScaledQuantity   float64 `json:"scaledQuantity"`
}

// ScaleResult is the outcome of scaling a recipe to a desired yield
type ScaleResult struct {
	RecipeID          string             `json:"recipeId"`
	OriginalYield     float64            `json:"originalYield"`
	OriginalUnitID    string             `json:"originalUnitId"`
	DesiredYield      float64            `json:"desiredYield"`
	DesiredUnitID     string             `json:"desiredUnitId"`
	ScalingFactor     float64            `json:"scalingFactor"`
	ScaledIngredients []ScaledIngredient `json:"scaledIngredients"`
}

// ScaleRecipe scales a recipe's ingredient list to a desired yield. The
// desired yield is converted into the recipe's own yield unit first; this
// conversion is informational and falls back to the unconverted value when
// the factor table has no path. Scaling a recipe to its native yield returns
// factor 1 and unchanged quantities.
func (s *Service) ScaleRecipe(recipeID string, desiredYield float64, desiredUnitID string) (*ScaleResult, error) {
	if desiredYield <= 0 {
		return nil, validationErrorf("desired yield must be positive, got %v", desiredYield)
	}

	var recipe models.Recipe
	err := s.db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Preload("Ingredients.Item").Preload("Ingredients.Unit").
		Where("id = ?", recipeID).First(&recipe).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	if recipe.YieldQuantity <= 0 {
		return nil, validationErrorf("recipe %q has a non-positive yield quantity", recipe.Name)
	}

	desiredInRecipeUnit := s.converter.Convert(desiredYield, desiredUnitID, recipe.YieldUnitID)
	scalingFactor := desiredInRecipeUnit / recipe.YieldQuantity

	scaled := make([]ScaledIngredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		si := ScaledIngredient{
			ItemID:           ing.ItemID,
			UnitID:           ing.UnitID,
			OriginalQuantity: ing.Quantity,
			ScaledQuantity:   ing.Quantity * scalingFactor,
		}
		if ing.Item != nil {
			si.ItemName = ing.Item.Name
		}
		if ing.Unit != nil {
			si.UnitSymbol = ing.Unit.Symbol
		}
		scaled = append(scaled, si)
	}

	return &ScaleResult{
		RecipeID:          recipe.ID,
		OriginalYield:     recipe.YieldQuantity,
		OriginalUnitID:    recipe.YieldUnitID,
		DesiredYield:      desiredYield,
		DesiredUnitID:     desiredUnitID,
		ScalingFactor:     scalingFactor,
		ScaledIngredients: scaled,
	}, nil
}

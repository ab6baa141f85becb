package inventory

import (
	"time"

	"github.com/jinzhu/gorm"

	"bakehouse/internal/models"
	"bakehouse/internal/monitoring"
)

// ProductionIngredient is one scaled ingredient requirement, quantity in the
// ingredient's own unit
type ProductionIngredient struct {
	ItemID   string  `json:"itemId"`
	Quantity float64 `json:"quantity"`
	UnitID   string  `json:"unitId"`
}

// Shortage reports one ingredient whose required quantity exceeds available
// stock. Required and available are denominated in the stock's unit when a
// stock row exists, otherwise in the ingredient's own unit with available 0.
type Shortage struct {
	ItemID        string  `json:"itemId"`
	ItemName      string  `json:"itemName"`
	Required      float64 `json:"required"`
	RequiredUnit  string  `json:"requiredUnit"`
	Available     float64 `json:"available"`
	AvailableUnit string  `json:"availableUnit"`
}

// ProductionPlan is the outcome of planning a production run. Either
// Shortages is non-empty and nothing may be committed, or the cost fields
// and Items snapshot are populated.
type ProductionPlan struct {
	Shortages      []Shortage              `json:"shortages,omitempty"`
	Items          []models.ProductionItem `json:"items,omitempty"`
	IngredientCost float64                 `json:"ingredientCost"`
	TotalCost      float64                 `json:"totalCost"`
	CostPerUnit    float64                 `json:"costPerUnit"`
}

// ProductionInput is everything needed to commit a production run
type ProductionInput struct {
	Date             time.Time              `json:"date"`
	RecipeID         string                 `json:"recipeId"`
	ProducedQuantity float64                `json:"producedQuantity"`
	ProducedUnitID   string                 `json:"producedUnitId"`
	LaborCost        float64                `json:"laborCost"`
	OverheadCost     float64                `json:"overheadCost"`
	Notes            string                 `json:"notes"`
	Ingredients      []ProductionIngredient `json:"scaledIngredients"`
}

// PlanProduction validates stock availability for every scaled ingredient
// and, when nothing is short, computes the cost breakdown. Shortages are a
// normal structured result, not an error; the plan mutates nothing.
func (s *Service) PlanProduction(ingredients []ProductionIngredient, laborCost, overheadCost, producedQuantity float64) (*ProductionPlan, error) {
	if producedQuantity <= 0 {
		return nil, validationErrorf("produced quantity must be positive, got %v", producedQuantity)
	}
	if len(ingredients) == 0 {
		return nil, validationErrorf("at least one ingredient is required")
	}
	return planProduction(s.db, s.converter, ingredients, laborCost, overheadCost, producedQuantity)
}

func planProduction(db *gorm.DB, conv *Converter, ingredients []ProductionIngredient, laborCost, overheadCost, producedQuantity float64) (*ProductionPlan, error) {
	plan := &ProductionPlan{}

	for _, ing := range ingredients {
		var item models.Item
		err := db.Where("id = ?", ing.ItemID).First(&item).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrItemNotFound
		}
		if err != nil {
			return nil, err
		}

		var stock models.Stock
		err = db.Preload("Unit").Where("item_id = ?", ing.ItemID).First(&stock).Error
		if gorm.IsRecordNotFoundError(err) {
			var unit models.Unit
			symbol := ""
			if db.Where("id = ?", ing.UnitID).First(&unit).Error == nil {
				symbol = unit.Symbol
			}
			plan.Shortages = append(plan.Shortages, Shortage{
				ItemID:        ing.ItemID,
				ItemName:      item.Name,
				Required:      ing.Quantity,
				RequiredUnit:  symbol,
				Available:     0,
				AvailableUnit: symbol,
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		required, cerr := conv.ConvertStrict(ing.Quantity, ing.UnitID, stock.UnitID)
		if cerr != nil {
			return nil, cerr
		}
		if required > stock.Quantity {
			symbol := ""
			if stock.Unit != nil {
				symbol = stock.Unit.Symbol
			}
			plan.Shortages = append(plan.Shortages, Shortage{
				ItemID:        ing.ItemID,
				ItemName:      item.Name,
				Required:      required,
				RequiredUnit:  symbol,
				Available:     stock.Quantity,
				AvailableUnit: symbol,
			})
		}
	}

	if len(plan.Shortages) > 0 {
		return plan, nil
	}

	// Costing: unit cost prefers the running average, falling back to the
	// last purchase price, then zero for never-purchased items
	for _, ing := range ingredients {
		var item models.Item
		if err := db.Where("id = ?", ing.ItemID).First(&item).Error; err != nil {
			return nil, err
		}

		unitCost := item.AvgPrice
		if unitCost == 0 {
			unitCost = item.LastPurchasePrice
		}
		lineTotal := ing.Quantity * unitCost
		plan.IngredientCost += lineTotal

		plan.Items = append(plan.Items, models.ProductionItem{
			ItemID:    ing.ItemID,
			Quantity:  ing.Quantity,
			UnitID:    ing.UnitID,
			UnitCost:  unitCost,
			LineTotal: lineTotal,
		})
	}

	plan.TotalCost = plan.IngredientCost + laborCost + overheadCost
	plan.CostPerUnit = plan.TotalCost / producedQuantity
	return plan, nil
}

// CommitProduction plans the production and, when nothing is short, persists
// the Production with its consumed-item snapshot and decrements stock for
// every ingredient. The whole commit runs in one transaction and every
// decrement is conditional on sufficient quantity, so two concurrent
// commits over the same item cannot over-draw stock below zero; the loser
// aborts with ErrInsufficientStock and leaves no partial state.
func (s *Service) CommitProduction(in ProductionInput) (*models.Production, []Shortage, error) {
	if in.Date.IsZero() {
		return nil, nil, validationErrorf("date is required")
	}
	if in.RecipeID == "" {
		return nil, nil, validationErrorf("recipe is required")
	}
	if in.ProducedQuantity <= 0 {
		return nil, nil, validationErrorf("produced quantity must be positive, got %v", in.ProducedQuantity)
	}
	if in.ProducedUnitID == "" {
		return nil, nil, validationErrorf("produced unit is required")
	}
	if len(in.Ingredients) == 0 {
		return nil, nil, validationErrorf("at least one ingredient is required")
	}
	if in.LaborCost < 0 || in.OverheadCost < 0 {
		return nil, nil, validationErrorf("labor and overhead costs cannot be negative")
	}

	var recipe models.Recipe
	err := s.db.Where("id = ?", in.RecipeID).First(&recipe).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var production *models.Production
	var shortages []Shortage

	err = s.db.Transaction(func(tx *gorm.DB) error {
		conv := NewConverter(tx)

		plan, perr := planProduction(tx, conv, in.Ingredients, in.LaborCost, in.OverheadCost, in.ProducedQuantity)
		if perr != nil {
			return perr
		}
		if len(plan.Shortages) > 0 {
			shortages = plan.Shortages
			return nil
		}

		p := models.Production{
			Date:             in.Date,
			RecipeID:         in.RecipeID,
			ProducedQuantity: in.ProducedQuantity,
			ProducedUnitID:   in.ProducedUnitID,
			LaborCost:        in.LaborCost,
			OverheadCost:     in.OverheadCost,
			TotalCost:        plan.TotalCost,
			CostPerUnit:      plan.CostPerUnit,
			Notes:            in.Notes,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		for i := range plan.Items {
			plan.Items[i].ProductionID = p.ID
			if err := tx.Create(&plan.Items[i]).Error; err != nil {
				return err
			}
		}

		// Re-derive each stock-unit quantity at decrement time, then apply
		// it as a conditional update
		for _, ing := range in.Ingredients {
			var stock models.Stock
			if err := tx.Where("item_id = ?", ing.ItemID).First(&stock).Error; err != nil {
				return err
			}
			required, cerr := conv.ConvertStrict(ing.Quantity, ing.UnitID, stock.UnitID)
			if cerr != nil {
				return cerr
			}
			if err := decrementStockChecked(tx, ing.ItemID, required); err != nil {
				return err
			}
		}

		p.Items = plan.Items
		production = &p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if shortages != nil {
		monitoring.RecordShortageAbort()
		return nil, shortages, nil
	}

	monitoring.RecordProduction()

	itemIDs := make([]string, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		itemIDs = append(itemIDs, ing.ItemID)
	}
	s.notifyLowStock(itemIDs)

	return production, nil, nil
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"bakehouse/internal/inventory"
	"bakehouse/internal/models"
)

// ListProductions returns committed production runs, newest first
func (b *BakeryAPI) ListProductions(c *gin.Context) {
	var productions []models.Production
	q := b.db.
		Preload("Recipe").
		Preload("ProducedUnit").
		Preload("Items").
		Preload("Items.Item").
		Preload("Items.Unit").
		Order("date desc, created_at desc")
	if err := q.Find(&productions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch productions"})
		return
	}
	c.JSON(http.StatusOK, productions)
}

type productionIngredientRequest struct {
	ItemID   string  `json:"itemId" binding:"required"`
	Quantity float64 `json:"quantity"`
	UnitID   string  `json:"unitId" binding:"required"`
}

type productionRequest struct {
	Date              string                        `json:"date" binding:"required"`
	RecipeID          string                        `json:"recipeId" binding:"required"`
	ProducedQuantity  float64                       `json:"producedQuantity"`
	ProducedUnitID    string                        `json:"producedUnitId" binding:"required"`
	LaborCost         float64                       `json:"laborCost"`
	OverheadCost      float64                       `json:"overheadCost"`
	Notes             string                        `json:"notes"`
	ScaledIngredients []productionIngredientRequest `json:"scaledIngredients" binding:"required"`
}

func (r productionRequest) toInput() (inventory.ProductionInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return inventory.ProductionInput{}, err
	}
	in := inventory.ProductionInput{
		Date:             date,
		RecipeID:         r.RecipeID,
		ProducedQuantity: r.ProducedQuantity,
		ProducedUnitID:   r.ProducedUnitID,
		LaborCost:        r.LaborCost,
		OverheadCost:     r.OverheadCost,
		Notes:            r.Notes,
	}
	for _, ing := range r.ScaledIngredients {
		in.Ingredients = append(in.Ingredients, inventory.ProductionIngredient{
			ItemID:   ing.ItemID,
			Quantity: ing.Quantity,
			UnitID:   ing.UnitID,
		})
	}
	return in, nil
}

// CreateProduction commits a production run: it checks stock for every
// scaled ingredient, and either consumes all of them and records the run
// with its cost breakdown, or reports the shortages and changes nothing.
func (b *BakeryAPI) CreateProduction(c *gin.Context) {
	var req productionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
		return
	}

	production, shortages, err := b.svc.CommitProduction(in)
	if err != nil {
		b.productionError(c, err)
		return
	}
	if len(shortages) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Insufficient stock",
			"shortages": shortages,
		})
		return
	}
	c.JSON(http.StatusCreated, production)
}

// PlanProduction runs the stock check and costing for a prospective run
// without committing anything
func (b *BakeryAPI) PlanProduction(c *gin.Context) {
	var req productionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
		return
	}

	plan, err := b.svc.PlanProduction(in.Ingredients, in.LaborCost, in.OverheadCost, in.ProducedQuantity)
	if err != nil {
		b.productionError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (b *BakeryAPI) productionError(c *gin.Context, err error) {
	switch {
	case inventory.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, inventory.ErrItemNotFound),
		errors.Is(err, inventory.ErrUnitNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var convErr *inventory.NoConversionError
		if errors.As(err, &convErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": convErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process production"})
	}
}

// DeleteProduction moves a production run to the trash bin. Consumed stock
// is not restored.
func (b *BakeryAPI) DeleteProduction(c *gin.Context) {
	id := c.Param("id")

	var production models.Production
	if err := b.db.First(&production, "id = ?", id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production"})
		return
	}

	if err := b.db.Delete(&production).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete production"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Production moved to trash"})
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"bakehouse/internal/inventory"
	"bakehouse/internal/models"
)

// ListRecipes returns all non-deleted recipes with their ingredients
func (b *BakeryAPI) ListRecipes(c *gin.Context) {
	var recipes []models.Recipe
	err := b.db.Preload("YieldUnit").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Ingredients.Item").Preload("Ingredients.Unit").
		Order("name").Find(&recipes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe by id
func (b *BakeryAPI) GetRecipe(c *gin.Context) {
	var recipe models.Recipe
	err := b.db.Preload("YieldUnit").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Ingredients.Item").Preload("Ingredients.Unit").
		Where("id = ?", c.Param("id")).First(&recipe).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe adds a recipe with its ingredient list
func (b *BakeryAPI) CreateRecipe(c *gin.Context) {
	var req struct {
		Name          string  `json:"name"`
		Description   string  `json:"description"`
		YieldQuantity float64 `json:"yieldQuantity"`
		YieldUnitID   string  `json:"yieldUnitId"`
		Ingredients   []struct {
			ItemID   string  `json:"itemId"`
			Quantity float64 `json:"quantity"`
			UnitID   string  `json:"unitId"`
		} `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	// A zero yield would make every later scaling divide by zero
	if req.YieldQuantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Yield quantity must be positive"})
		return
	}
	if req.YieldUnitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Yield unit is required"})
		return
	}
	for i, ing := range req.Ingredients {
		if ing.ItemID == "" || ing.UnitID == "" || ing.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Ingredient %d is incomplete", i+1)})
			return
		}
	}

	recipe := models.Recipe{
		Name:          req.Name,
		Description:   req.Description,
		YieldQuantity: req.YieldQuantity,
		YieldUnitID:   req.YieldUnitID,
	}
	if err := b.db.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	for i, ing := range req.Ingredients {
		b.db.Create(&models.RecipeIngredient{
			RecipeID: recipe.ID,
			ItemID:   ing.ItemID,
			Quantity: ing.Quantity,
			UnitID:   ing.UnitID,
			Position: i,
		})
	}

	c.JSON(http.StatusCreated, recipe)
}

// DeleteRecipe soft-deletes a recipe
func (b *BakeryAPI) DeleteRecipe(c *gin.Context) {
	var recipe models.Recipe
	err := b.db.Where("id = ?", c.Param("id")).First(&recipe).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}
	if err := b.db.Delete(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe moved to trash"})
}

// ScaleRecipe scales a recipe's ingredients to a desired yield
func (b *BakeryAPI) ScaleRecipe(c *gin.Context) {
	var req struct {
		DesiredYield  float64 `json:"desiredYield"`
		DesiredUnitID string  `json:"desiredUnitId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := b.svc.ScaleRecipe(c.Param("id"), req.DesiredYield, req.DesiredUnitID)
	if err != nil {
		if errors.Is(err, inventory.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		if inventory.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scale recipe"})
		return
	}
	c.JSON(http.StatusOK, result)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"bakehouse/internal/models"
)

// ListItems returns all non-deleted items with their stock and units
func (b *BakeryAPI) ListItems(c *gin.Context) {
	query := b.db.Preload("BaseUnit").Preload("Stock").Preload("Stock.Unit").
		Preload("Units").Preload("Units.Unit").Order("name")
	if itemType := c.Query("type"); itemType != "" {
		query = query.Where("type = ?", itemType)
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem returns one item by id
func (b *BakeryAPI) GetItem(c *gin.Context) {
	var item models.Item
	err := b.db.Preload("BaseUnit").Preload("Stock").Preload("Stock.Unit").
		Preload("Units").Preload("Units.Unit").
		Where("id = ?", c.Param("id")).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

type itemRequest struct {
	Name             string   `json:"name"`
	SKU              *string  `json:"sku"`
	Type             string   `json:"type"`
	Category         string   `json:"category"`
	BaseUnitID       string   `json:"baseUnitId"`
	ReorderThreshold float64  `json:"reorderThreshold"`
	Location         string   `json:"location"`
	UnitIDs          []string `json:"unitIds"`
}

// CreateItem adds a raw material or essence
func (b *BakeryAPI) CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.BaseUnitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and base unit are required"})
		return
	}
	switch models.ItemType(req.Type) {
	case models.ItemTypeRawMaterial, models.ItemTypeEssence:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be RAW_MATERIAL or ESSENCE"})
		return
	}
	var unit models.Unit
	if err := b.db.Where("id = ?", req.BaseUnitID).First(&unit).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base unit"})
		return
	}

	item := models.Item{
		Name:             req.Name,
		SKU:              req.SKU,
		Type:             models.ItemType(req.Type),
		Category:         req.Category,
		BaseUnitID:       req.BaseUnitID,
		ReorderThreshold: req.ReorderThreshold,
		Location:         req.Location,
	}
	if err := b.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An item with this SKU already exists"})
		return
	}
	for _, unitID := range req.UnitIDs {
		b.db.Create(&models.ItemUnit{ItemID: item.ID, UnitID: unitID})
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem edits an item's descriptive fields and alternate units. Price
// fields are owned by the purchase path and are not editable here.
func (b *BakeryAPI) UpdateItem(c *gin.Context) {
	var item models.Item
	err := b.db.Where("id = ?", c.Param("id")).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":              req.Name,
		"sku":               req.SKU,
		"category":          req.Category,
		"base_unit_id":      req.BaseUnitID,
		"reorder_threshold": req.ReorderThreshold,
		"location":          req.Location,
	}
	if err := b.db.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	if req.UnitIDs != nil {
		b.db.Where("item_id = ?", item.ID).Delete(&models.ItemUnit{})
		for _, unitID := range req.UnitIDs {
			b.db.Create(&models.ItemUnit{ItemID: item.ID, UnitID: unitID})
		}
	}

	b.GetItem(c)
}

// DeleteItem soft-deletes an item by default. With ?permanent=true the row
// is removed for good, but only when nothing references it.
func (b *BakeryAPI) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	var item models.Item
	err := b.db.Unscoped().Where("id = ?", id).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}

	if c.Query("permanent") == "true" {
		if n := b.itemReferenceCount(id); n > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cannot delete: item is still referenced by purchases, recipes or productions",
			})
			return
		}
		b.db.Unscoped().Where("item_id = ?", id).Delete(&models.ItemUnit{})
		b.db.Unscoped().Where("item_id = ?", id).Delete(&models.Stock{})
		if err := b.db.Unscoped().Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item permanently deleted"})
		return
	}

	if err := b.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item moved to trash"})
}

// itemReferenceCount counts historical records that still point at an item
func (b *BakeryAPI) itemReferenceCount(itemID string) int64 {
	var total, n int64
	b.db.Model(&models.PurchaseItem{}).Where("item_id = ?", itemID).Count(&n)
	total += n
	b.db.Model(&models.RecipeIngredient{}).Where("item_id = ?", itemID).Count(&n)
	total += n
	b.db.Model(&models.ProductionItem{}).Where("item_id = ?", itemID).Count(&n)
	total += n
	return total
}

// GetItemStock returns an item's current stock, zero when none exists
func (b *BakeryAPI) GetItemStock(c *gin.Context) {
	stock, err := b.svc.GetStock(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return
	}
	if stock == nil {
		c.JSON(http.StatusOK, gin.H{"itemId": c.Param("id"), "quantity": 0})
		return
	}
	c.JSON(http.StatusOK, stock)
}

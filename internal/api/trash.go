package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"bakehouse/internal/models"
)

// trashEntry is one soft-deleted record of any entity kind
type trashEntry struct {
	Entity    string      `json:"entity"`
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	DeletedAt interface{} `json:"deletedAt"`
}

// ListTrash returns every soft-deleted record across all entity kinds
func (b *BakeryAPI) ListTrash(c *gin.Context) {
	entries := []trashEntry{}

	var items []models.Item
	if err := b.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trash"})
		return
	}
	for _, it := range items {
		entries = append(entries, trashEntry{Entity: "item", ID: it.ID, Name: it.Name, DeletedAt: it.DeletedAt})
	}

	var recipes []models.Recipe
	if err := b.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trash"})
		return
	}
	for _, r := range recipes {
		entries = append(entries, trashEntry{Entity: "recipe", ID: r.ID, Name: r.Name, DeletedAt: r.DeletedAt})
	}

	var suppliers []models.Supplier
	if err := b.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&suppliers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trash"})
		return
	}
	for _, s := range suppliers {
		entries = append(entries, trashEntry{Entity: "supplier", ID: s.ID, Name: s.Name, DeletedAt: s.DeletedAt})
	}

	var purchases []models.Purchase
	if err := b.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trash"})
		return
	}
	for _, p := range purchases {
		entries = append(entries, trashEntry{Entity: "purchase", ID: p.ID, Name: p.Date.Format("2006-01-02"), DeletedAt: p.DeletedAt})
	}

	var productions []models.Production
	if err := b.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&productions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trash"})
		return
	}
	for _, p := range productions {
		entries = append(entries, trashEntry{Entity: "production", ID: p.ID, Name: p.Date.Format("2006-01-02"), DeletedAt: p.DeletedAt})
	}

	c.JSON(http.StatusOK, entries)
}

// trashTables maps the entity segment of the restore route to its table
var trashTables = map[string]string{
	"item":       models.Item{}.TableName(),
	"recipe":     models.Recipe{}.TableName(),
	"supplier":   models.Supplier{}.TableName(),
	"purchase":   models.Purchase{}.TableName(),
	"production": models.Production{}.TableName(),
}

// RestoreFromTrash clears the deletion marker on a soft-deleted record,
// bringing it back into every listing
func (b *BakeryAPI) RestoreFromTrash(c *gin.Context) {
	entity := c.Param("entity")
	id := c.Param("id")

	table, ok := trashTables[entity]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type: " + entity})
		return
	}

	res := b.db.Table(table).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", gorm.Expr("NULL"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore record"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No such record in trash"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restored from trash"})
}

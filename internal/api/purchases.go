package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"bakehouse/internal/inventory"
	"bakehouse/internal/models"
)

// parseDate accepts a plain "2006-01-02" date and anchors it at noon local
// time so timezone offsets cannot shift it across a day boundary.
func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(12 * time.Hour), nil
}

// ListPurchases returns committed purchases, newest first
func (b *BakeryAPI) ListPurchases(c *gin.Context) {
	var purchases []models.Purchase
	q := b.db.
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Item").
		Preload("Items.Unit").
		Order("date desc, created_at desc")
	if err := q.Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}
	c.JSON(http.StatusOK, purchases)
}

type purchaseLineRequest struct {
	ItemID    string  `json:"itemId" binding:"required"`
	Quantity  float64 `json:"quantity"`
	UnitID    string  `json:"unitId" binding:"required"`
	UnitPrice float64 `json:"unitPrice"`
}

type purchaseRequest struct {
	Date       string                `json:"date" binding:"required"`
	SupplierID string                `json:"supplierId" binding:"required"`
	Notes      string                `json:"notes"`
	Items      []purchaseLineRequest `json:"items" binding:"required"`
}

// CreatePurchase validates and commits a purchase order. On success the
// purchased quantities are already in stock and item prices updated.
func (b *BakeryAPI) CreatePurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
		return
	}

	in := inventory.PurchaseInput{
		Date:       date,
		SupplierID: req.SupplierID,
		Notes:      req.Notes,
	}
	for _, line := range req.Items {
		in.Lines = append(in.Lines, inventory.PurchaseLine{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitID:    line.UnitID,
			UnitPrice: line.UnitPrice,
		})
	}

	purchase, err := b.svc.CommitPurchase(in)
	if err != nil {
		switch {
		case inventory.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, inventory.ErrSupplierNotFound),
			errors.Is(err, inventory.ErrItemNotFound),
			errors.Is(err, inventory.ErrUnitNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			var convErr *inventory.NoConversionError
			if errors.As(err, &convErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": convErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit purchase"})
		}
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// DeletePurchase moves a purchase to the trash bin. Stock and price effects
// of the original commit are not unwound.
func (b *BakeryAPI) DeletePurchase(c *gin.Context) {
	id := c.Param("id")

	var purchase models.Purchase
	if err := b.db.First(&purchase, "id = ?", id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase"})
		return
	}

	if err := b.db.Delete(&purchase).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase moved to trash"})
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bakehouse/internal/models"
	"bakehouse/internal/monitoring"
)

// lowStockEntry describes one item at or below its reorder threshold,
// denominated in the item's base unit
type lowStockEntry struct {
	ItemID     string  `json:"itemId"`
	Name       string  `json:"name"`
	Available  float64 `json:"available"`
	Threshold  float64 `json:"threshold"`
	UnitSymbol string  `json:"unitSymbol"`
}

// DashboardStats aggregates the numbers the dashboard shows: entity counts,
// items at or below their reorder threshold, and the last 30 days of
// purchase spend and production cost.
func (b *BakeryAPI) DashboardStats(c *gin.Context) {
	var itemCount, recipeCount, supplierCount, purchaseCount, productionCount int
	b.db.Model(&models.Item{}).Count(&itemCount)
	b.db.Model(&models.Recipe{}).Count(&recipeCount)
	b.db.Model(&models.Supplier{}).Count(&supplierCount)
	b.db.Model(&models.Purchase{}).Count(&purchaseCount)
	b.db.Model(&models.Production{}).Count(&productionCount)

	lowStock, err := b.lowStockItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute low stock"})
		return
	}
	monitoring.SetLowStockCount(len(lowStock))

	since := time.Now().AddDate(0, 0, -30)

	var purchaseSpend float64
	row := b.db.Model(&models.Purchase{}).
		Where("date >= ?", since).
		Select("COALESCE(SUM(total_amount), 0)").Row()
	if row != nil {
		row.Scan(&purchaseSpend)
	}

	var productionCost float64
	row = b.db.Model(&models.Production{}).
		Where("date >= ?", since).
		Select("COALESCE(SUM(total_cost), 0)").Row()
	if row != nil {
		row.Scan(&productionCost)
	}

	c.JSON(http.StatusOK, gin.H{
		"counts": gin.H{
			"items":       itemCount,
			"recipes":     recipeCount,
			"suppliers":   supplierCount,
			"purchases":   purchaseCount,
			"productions": productionCount,
		},
		"lowStock": lowStock,
		"last30Days": gin.H{
			"purchaseSpend":  purchaseSpend,
			"productionCost": productionCost,
		},
		"metrics": b.monitor.GetMetrics(),
	})
}

// lowStockItems compares each item's stock, converted into its base unit,
// against its reorder threshold. Items whose stock unit cannot be converted
// are skipped rather than falsely flagged.
func (b *BakeryAPI) lowStockItems() ([]lowStockEntry, error) {
	var items []models.Item
	q := b.db.
		Preload("BaseUnit").
		Preload("Stock").
		Where("reorder_threshold > 0")
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}

	conv := b.svc.Converter()
	entries := []lowStockEntry{}
	for _, item := range items {
		available := 0.0
		if item.Stock != nil {
			qty, err := conv.ConvertStrict(item.Stock.Quantity, item.Stock.UnitID, item.BaseUnitID)
			if err != nil {
				continue
			}
			available = qty
		}
		if available > item.ReorderThreshold {
			continue
		}
		entry := lowStockEntry{
			ItemID:    item.ID,
			Name:      item.Name,
			Available: available,
			Threshold: item.ReorderThreshold,
		}
		if item.BaseUnit != nil {
			entry.UnitSymbol = item.BaseUnit.Symbol
		}
		b.monitor.RecordStockLevel(item.Name, available, entry.UnitSymbol)
		entries = append(entries, entry)
	}
	return entries, nil
}

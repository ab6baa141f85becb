package inventory

import (
	"github.com/jinzhu/gorm"

	"bakehouse/internal/models"
)

// LowStockFunc is notified after a commit leaves an item at or below its
// reorder threshold. Quantity is reported in the item's base unit.
type LowStockFunc func(item models.Item, quantity float64, unitSymbol string)

// Service implements the purchasing, scaling, stock and costing engine on
// top of an explicitly injected database handle.
type Service struct {
	db        *gorm.DB
	converter *Converter

	// OnLowStock, when set, is called outside the commit transaction for
	// every item the commit left at or below its reorder threshold.
	OnLowStock LowStockFunc
}

// NewService creates the inventory service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:        db,
		converter: NewConverter(db),
	}
}

// Converter exposes the service's conversion engine
func (s *Service) Converter() *Converter {
	return s.converter
}

// DB exposes the underlying handle for the thin CRUD layer
func (s *Service) DB() *gorm.DB {
	return s.db
}

// notifyLowStock re-reads the item's stock after a commit and fires the
// low-stock callback if it sits at or below the reorder threshold. The
// threshold compare happens in the item's base unit.
func (s *Service) notifyLowStock(itemIDs []string) {
	if s.OnLowStock == nil {
		return
	}
	seen := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		var item models.Item
		if err := s.db.Preload("BaseUnit").Where("id = ?", id).First(&item).Error; err != nil {
			continue
		}
		if item.ReorderThreshold <= 0 {
			continue
		}

		var stock models.Stock
		available := 0.0
		if err := s.db.Where("item_id = ?", id).First(&stock).Error; err == nil {
			available = s.converter.Convert(stock.Quantity, stock.UnitID, item.BaseUnitID)
		}
		if available <= item.ReorderThreshold {
			symbol := ""
			if item.BaseUnit != nil {
				symbol = item.BaseUnit.Symbol
			}
			s.OnLowStock(item, available, symbol)
		}
	}
}

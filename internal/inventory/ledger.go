package inventory

import (
	"github.com/jinzhu/gorm"

	"bakehouse/internal/models"
)

// GetStock returns the stock row for an item, or nil when none exists yet.
// Absent stock is a valid state for a newly created item and means zero
// availability.
func (s *Service) GetStock(itemID string) (*models.Stock, error) {
	var stock models.Stock
	err := s.db.Preload("Unit").Where("item_id = ?", itemID).First(&stock).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// IncrementStock converts the quantity into the item's stock unit and adds
// it. When no stock row exists yet one is created in the item's base unit.
// Conversion is strict here: an increment in a unit with no path to the
// stock unit is rejected rather than silently miscounted.
func (s *Service) IncrementStock(itemID string, quantity float64, unitID string) error {
	return incrementStock(s.db, s.converter, itemID, quantity, unitID)
}

func incrementStock(db *gorm.DB, conv *Converter, itemID string, quantity float64, unitID string) error {
	var item models.Item
	err := db.Where("id = ?", itemID).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	var stock models.Stock
	err = db.Where("item_id = ?", itemID).First(&stock).Error
	if gorm.IsRecordNotFoundError(err) {
		converted, cerr := conv.ConvertStrict(quantity, unitID, item.BaseUnitID)
		if cerr != nil {
			return cerr
		}
		stock = models.Stock{
			ItemID:   itemID,
			Quantity: converted,
			UnitID:   item.BaseUnitID,
		}
		return db.Create(&stock).Error
	}
	if err != nil {
		return err
	}

	converted, cerr := conv.ConvertStrict(quantity, unitID, stock.UnitID)
	if cerr != nil {
		return cerr
	}
	return db.Model(&models.Stock{}).Where("item_id = ?", itemID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", converted)).Error
}

// DecrementStock converts the quantity into the item's stock unit and
// subtracts it unconditionally. Callers are responsible for running the
// availability check first; production commits instead go through
// decrementStockChecked inside a transaction.
func (s *Service) DecrementStock(itemID string, quantity float64, unitID string) error {
	var stock models.Stock
	err := s.db.Where("item_id = ?", itemID).First(&stock).Error
	if gorm.IsRecordNotFoundError(err) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	converted, cerr := s.converter.ConvertStrict(quantity, unitID, stock.UnitID)
	if cerr != nil {
		return cerr
	}
	return s.db.Model(&models.Stock{}).Where("item_id = ?", itemID).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", converted)).Error
}

// decrementStockChecked subtracts quantityInStockUnit from an item's stock
// only when the resulting quantity stays non-negative, as a single
// conditional update. Returns ErrInsufficientStock when the guard fails,
// which closes the check-then-act window between availability validation and
// the decrement under concurrent commits.
func decrementStockChecked(db *gorm.DB, itemID string, quantityInStockUnit float64) error {
	result := db.Model(&models.Stock{}).
		Where("item_id = ? AND quantity >= ?", itemID, quantityInStockUnit).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantityInStockUnit))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

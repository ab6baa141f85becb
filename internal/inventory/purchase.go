package inventory

import (
	"time"

	"github.com/jinzhu/gorm"

	"bakehouse/internal/models"
	"bakehouse/internal/monitoring"
)

// PurchaseLine is one line of a purchase order
type PurchaseLine struct {
	ItemID    string  `json:"itemId"`
	Quantity  float64 `json:"quantity"`
	UnitID    string  `json:"unitId"`
	UnitPrice float64 `json:"unitPrice"`
}

// PurchaseInput is everything needed to commit a purchase
type PurchaseInput struct {
	Date       time.Time      `json:"date"`
	SupplierID string         `json:"supplierId"`
	Notes      string         `json:"notes"`
	Lines      []PurchaseLine `json:"items"`
}

// ApplyPurchase updates an item's price fields for one purchase line and
// adds the purchased quantity to its stock. The running average price is
// seeded with the first purchase price and thereafter recomputed as
// (avg+new)/2; this is deliberately not quantity-weighted and matches the
// books this system has always kept.
//
// Runs in its own transaction so a failed stock increment (unknown item,
// missing conversion path) never leaves the price fields mutated on their
// own. CommitPurchase supplies its outer transaction instead.
func (s *Service) ApplyPurchase(itemID string, quantity float64, unitID string, unitPrice float64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return applyPurchase(tx, NewConverter(tx), itemID, quantity, unitID, unitPrice)
	})
}

func applyPurchase(db *gorm.DB, conv *Converter, itemID string, quantity float64, unitID string, unitPrice float64) error {
	var item models.Item
	err := db.Where("id = ?", itemID).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	newAvgPrice := unitPrice
	if item.AvgPrice != 0 {
		newAvgPrice = (item.AvgPrice + unitPrice) / 2
	}
	err = db.Model(&models.Item{}).Where("id = ?", itemID).Updates(map[string]interface{}{
		"last_purchase_price": unitPrice,
		"avg_price":           newAvgPrice,
	}).Error
	if err != nil {
		return err
	}

	return incrementStock(db, conv, itemID, quantity, unitID)
}

// CommitPurchase validates a purchase order and, in one transaction,
// persists the Purchase with its lines, updates every item's price fields
// and increments stock. Each line is applied independently of the others.
func (s *Service) CommitPurchase(in PurchaseInput) (*models.Purchase, error) {
	if err := s.validatePurchase(in); err != nil {
		return nil, err
	}

	var purchase models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		conv := NewConverter(tx)

		totalAmount := 0.0
		purchase = models.Purchase{
			Date:       in.Date,
			SupplierID: in.SupplierID,
			Notes:      in.Notes,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		for _, line := range in.Lines {
			lineTotal := line.Quantity * line.UnitPrice
			totalAmount += lineTotal

			pi := models.PurchaseItem{
				PurchaseID: purchase.ID,
				ItemID:     line.ItemID,
				Quantity:   line.Quantity,
				UnitID:     line.UnitID,
				UnitPrice:  line.UnitPrice,
				LineTotal:  lineTotal,
			}
			if err := tx.Create(&pi).Error; err != nil {
				return err
			}
			purchase.Items = append(purchase.Items, pi)

			if err := applyPurchase(tx, conv, line.ItemID, line.Quantity, line.UnitID, line.UnitPrice); err != nil {
				return err
			}
		}

		purchase.TotalAmount = totalAmount
		return tx.Model(&models.Purchase{}).Where("id = ?", purchase.ID).
			UpdateColumn("total_amount", totalAmount).Error
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordPurchase()

	itemIDs := make([]string, 0, len(in.Lines))
	for _, line := range in.Lines {
		itemIDs = append(itemIDs, line.ItemID)
	}
	s.notifyLowStock(itemIDs)

	return &purchase, nil
}

// validatePurchase rejects bad input before any mutation
func (s *Service) validatePurchase(in PurchaseInput) error {
	if in.Date.IsZero() {
		return validationErrorf("date is required")
	}
	now := time.Now()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	if in.Date.After(endOfToday) {
		return validationErrorf("purchase date cannot be in the future")
	}
	if in.SupplierID == "" {
		return validationErrorf("supplier is required")
	}
	var supplier models.Supplier
	err := s.db.Where("id = ?", in.SupplierID).First(&supplier).Error
	if gorm.IsRecordNotFoundError(err) {
		return ErrSupplierNotFound
	}
	if err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return validationErrorf("at least one item is required")
	}

	for i, line := range in.Lines {
		if line.ItemID == "" {
			return validationErrorf("item %d: item is required", i+1)
		}
		if line.UnitID == "" {
			return validationErrorf("item %d: unit is required", i+1)
		}
		if line.Quantity <= 0 {
			return validationErrorf("item %d: valid quantity is required", i+1)
		}
		if line.UnitPrice <= 0 {
			return validationErrorf("item %d: valid unit price is required", i+1)
		}
		var item models.Item
		if err := s.db.Where("id = ?", line.ItemID).First(&item).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return ErrItemNotFound
			}
			return err
		}
		var unit models.Unit
		if err := s.db.Where("id = ?", line.UnitID).First(&unit).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return ErrUnitNotFound
			}
			return err
		}
	}
	return nil
}

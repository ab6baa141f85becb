package inventory

import (
	"log"

	"github.com/jinzhu/gorm"

	"bakehouse/internal/models"
	"bakehouse/internal/monitoring"
)

// Converter resolves quantities between measurement units using the stored
// conversion factor table. Lookups are direct or single-inverse only; no
// multi-hop chaining (g → kg → L) is attempted.
type Converter struct {
	db *gorm.DB
}

// NewConverter creates a converter bound to a database handle. Inside a
// transaction, bind a fresh converter to the transaction handle.
func NewConverter(db *gorm.DB) *Converter {
	return &Converter{db: db}
}

// lookup resolves a conversion and reports whether a path existed. Matching
// unit ids short-circuit to avoid float drift.
func (c *Converter) lookup(quantity float64, fromUnitID, toUnitID string) (float64, bool) {
	if fromUnitID == toUnitID {
		return quantity, true
	}

	var factor models.ConversionFactor
	err := c.db.Where("from_unit_id = ? AND to_unit_id = ?", fromUnitID, toUnitID).
		First(&factor).Error
	if err == nil {
		return quantity * factor.Factor, true
	}
	if !gorm.IsRecordNotFoundError(err) {
		log.Printf("conversion lookup failed: %v", err)
		return quantity, false
	}

	// Try the inverse pair
	err = c.db.Where("from_unit_id = ? AND to_unit_id = ?", toUnitID, fromUnitID).
		First(&factor).Error
	if err == nil {
		return quantity / factor.Factor, true
	}
	if !gorm.IsRecordNotFoundError(err) {
		log.Printf("conversion lookup failed: %v", err)
	}
	return quantity, false
}

// Convert converts quantity from one unit to another. When no direct or
// inverse factor exists it logs a warning and returns the quantity
// unchanged, so display and estimation flows never fail on an incomplete
// conversion table. Callers that need hard correctness use ConvertStrict.
func (c *Converter) Convert(quantity float64, fromUnitID, toUnitID string) float64 {
	result, ok := c.lookup(quantity, fromUnitID, toUnitID)
	if !ok {
		log.Printf("no conversion found from %s to %s", fromUnitID, toUnitID)
		monitoring.RecordConversionFallback()
	}
	return result
}

// ConvertStrict converts quantity from one unit to another, failing when no
// conversion path exists. Stock mutation and costing go through this.
func (c *Converter) ConvertStrict(quantity float64, fromUnitID, toUnitID string) (float64, error) {
	result, ok := c.lookup(quantity, fromUnitID, toUnitID)
	if !ok {
		return 0, &NoConversionError{FromUnitID: fromUnitID, ToUnitID: toUnitID}
	}
	return result, nil
}

// AddFactor stores a conversion factor after validating it is positive
func (c *Converter) AddFactor(fromUnitID, toUnitID string, factor float64) (*models.ConversionFactor, error) {
	if factor <= 0 {
		return nil, validationErrorf("conversion factor must be positive, got %v", factor)
	}
	if fromUnitID == toUnitID {
		return nil, validationErrorf("conversion factor must relate two different units")
	}
	cf := models.ConversionFactor{
		FromUnitID: fromUnitID,
		ToUnitID:   toUnitID,
		Factor:     factor,
	}
	if err := c.db.Create(&cf).Error; err != nil {
		return nil, err
	}
	return &cf, nil
}

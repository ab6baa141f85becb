package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakehouse/internal/inventory"
	"bakehouse/internal/models"
)

// ListUnits returns all measurement units
func (b *BakeryAPI) ListUnits(c *gin.Context) {
	var units []models.Unit
	if err := b.db.Order("name").Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch units"})
		return
	}
	c.JSON(http.StatusOK, units)
}

// CreateUnit adds a new measurement unit
func (b *BakeryAPI) CreateUnit(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Type   string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and symbol are required"})
		return
	}
	switch models.UnitType(req.Type) {
	case models.UnitTypeWeight, models.UnitTypeVolume, models.UnitTypeCount:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be WEIGHT, VOLUME or COUNT"})
		return
	}

	unit := models.Unit{Name: req.Name, Symbol: req.Symbol, Type: models.UnitType(req.Type)}
	if err := b.db.Create(&unit).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A unit with this symbol already exists"})
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// ListConversionFactors returns the stored conversion table
func (b *BakeryAPI) ListConversionFactors(c *gin.Context) {
	var factors []models.ConversionFactor
	if err := b.db.Preload("FromUnit").Preload("ToUnit").Find(&factors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversion factors"})
		return
	}
	c.JSON(http.StatusOK, factors)
}

// CreateConversionFactor stores a new conversion factor
func (b *BakeryAPI) CreateConversionFactor(c *gin.Context) {
	var req struct {
		FromUnitID string  `json:"fromUnitId"`
		ToUnitID   string  `json:"toUnitId"`
		Factor     float64 `json:"factor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	factor, err := b.svc.Converter().AddFactor(req.FromUnitID, req.ToUnitID, req.Factor)
	if err != nil {
		var ve *inventory.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "A factor for this unit pair already exists"})
		return
	}
	c.JSON(http.StatusCreated, factor)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Unit represents a measurement unit used for stock, recipes and purchases.
// Units are immutable reference data; a unit is never deleted while any item,
// recipe or conversion factor references it.
type Unit struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Symbol    string    `gorm:"unique_index;not null" json:"symbol"`
	Type      UnitType  `gorm:"not null" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Unit
func (Unit) TableName() string {
	return "units"
}

// BeforeCreate assigns a UUID when none is provided
func (u *Unit) BeforeCreate(scope *gorm.Scope) error {
	if u.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// UnitType represents the category of a measurement unit
type UnitType string

const (
	// Unit categories
	UnitTypeWeight UnitType = "WEIGHT"
	UnitTypeVolume UnitType = "VOLUME"
	UnitTypeCount  UnitType = "COUNT"
)

// ConversionFactor represents a stored conversion between two units such that
// quantityInToUnit = quantityInFromUnit * Factor. Only one direction needs to
// be stored per pair; the engine derives the inverse as 1/Factor.
type ConversionFactor struct {
	ID         string    `gorm:"primary_key" json:"id"`
	FromUnitID string    `gorm:"not null;unique_index:idx_conversion_pair" json:"fromUnitId"`
	ToUnitID   string    `gorm:"not null;unique_index:idx_conversion_pair" json:"toUnitId"`
	Factor     float64   `gorm:"not null" json:"factor"`
	FromUnit   *Unit     `gorm:"foreignkey:FromUnitID" json:"fromUnit,omitempty"`
	ToUnit     *Unit     `gorm:"foreignkey:ToUnitID" json:"toUnit,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName sets the table name for ConversionFactor
func (ConversionFactor) TableName() string {
	return "conversion_factors"
}

// BeforeCreate assigns a UUID when none is provided
func (c *ConversionFactor) BeforeCreate(scope *gorm.Scope) error {
	if c.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

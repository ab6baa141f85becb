package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// ItemType represents the kind of purchasable item
type ItemType string

const (
	// Item types
	ItemTypeRawMaterial ItemType = "RAW_MATERIAL"
	ItemTypeEssence     ItemType = "ESSENCE"
)

// Item represents a raw material or flavoring essence tracked in inventory.
// Stock and cost are denominated in the item's base unit; alternate entry
// units are listed through ItemUnit rows. AvgPrice is a running mean updated
// on every purchase as (avg+new)/2, seeded with the first purchase price.
type Item struct {
	ID                string     `gorm:"primary_key" json:"id"`
	Name              string     `gorm:"not null" json:"name"`
	SKU               *string    `gorm:"unique_index" json:"sku"`
	Type              ItemType   `gorm:"not null" json:"type"`
	Category          string     `json:"category"`
	BaseUnitID        string     `gorm:"not null" json:"baseUnitId"`
	BaseUnit          *Unit      `gorm:"foreignkey:BaseUnitID" json:"baseUnit,omitempty"`
	ReorderThreshold  float64    `json:"reorderThreshold"`
	AvgPrice          float64    `json:"avgPrice"`
	LastPurchasePrice float64    `json:"lastPurchasePrice"`
	Location          string     `json:"location"`
	Units             []ItemUnit `gorm:"foreignkey:ItemID" json:"itemUnits,omitempty"`
	Stock             *Stock     `gorm:"foreignkey:ItemID" json:"stock,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	DeletedAt         *time.Time `sql:"index" json:"deletedAt,omitempty"`
}

// TableName sets the table name for Item
func (Item) TableName() string {
	return "items"
}

// BeforeCreate assigns a UUID when none is provided
func (i *Item) BeforeCreate(scope *gorm.Scope) error {
	if i.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// ItemUnit links an item to an alternate unit quantities may be entered in
type ItemUnit struct {
	ID     string `gorm:"primary_key" json:"id"`
	ItemID string `gorm:"not null;unique_index:idx_item_unit" json:"itemId"`
	UnitID string `gorm:"not null;unique_index:idx_item_unit" json:"unitId"`
	Unit   *Unit  `gorm:"foreignkey:UnitID" json:"unit,omitempty"`
}

// TableName sets the table name for ItemUnit
func (ItemUnit) TableName() string {
	return "item_units"
}

// BeforeCreate assigns a UUID when none is provided
func (iu *ItemUnit) BeforeCreate(scope *gorm.Scope) error {
	if iu.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// Stock holds the current on-hand quantity for an item. Exactly one row
// exists per item once anything has been purchased; the quantity is always
// denominated in UnitID, which is normally but not necessarily the item's
// base unit.
type Stock struct {
	ID        string    `gorm:"primary_key" json:"id"`
	ItemID    string    `gorm:"not null;unique_index" json:"itemId"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	UnitID    string    `gorm:"not null" json:"unitId"`
	Unit      *Unit     `gorm:"foreignkey:UnitID" json:"unit,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Stock
func (Stock) TableName() string {
	return "stocks"
}

// BeforeCreate assigns a UUID when none is provided
func (s *Stock) BeforeCreate(scope *gorm.Scope) error {
	if s.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

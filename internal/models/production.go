package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Production represents a committed production run. Items are a frozen
// snapshot of what was actually consumed, independent of later recipe edits.
type Production struct {
	ID               string           `gorm:"primary_key" json:"id"`
	Date             time.Time        `gorm:"not null" json:"date"`
	RecipeID         string           `gorm:"not null" json:"recipeId"`
	Recipe           *Recipe          `gorm:"foreignkey:RecipeID" json:"recipe,omitempty"`
	ProducedQuantity float64          `gorm:"not null" json:"producedQuantity"`
	ProducedUnitID   string           `gorm:"not null" json:"producedUnitId"`
	ProducedUnit     *Unit            `gorm:"foreignkey:ProducedUnitID" json:"producedUnit,omitempty"`
	LaborCost        float64          `json:"laborCost"`
	OverheadCost     float64          `json:"overheadCost"`
	TotalCost        float64          `json:"totalCost"`
	CostPerUnit      float64          `json:"costPerUnit"`
	Notes            string           `json:"notes"`
	Items            []ProductionItem `gorm:"foreignkey:ProductionID" json:"items,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	DeletedAt        *time.Time       `sql:"index" json:"deletedAt,omitempty"`
}

// TableName sets the table name for Production
func (Production) TableName() string {
	return "productions"
}

// BeforeCreate assigns a UUID when none is provided
func (p *Production) BeforeCreate(scope *gorm.Scope) error {
	if p.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// ProductionItem records one ingredient consumed by a production run, with
// the unit cost and line total in effect at commit time.
type ProductionItem struct {
	ID           string  `gorm:"primary_key" json:"id"`
	ProductionID string  `gorm:"not null;index" json:"productionId"`
	ItemID       string  `gorm:"not null" json:"itemId"`
	Item         *Item   `gorm:"foreignkey:ItemID" json:"item,omitempty"`
	Quantity     float64 `gorm:"not null" json:"quantity"`
	UnitID       string  `gorm:"not null" json:"unitId"`
	Unit         *Unit   `gorm:"foreignkey:UnitID" json:"unit,omitempty"`
	UnitCost     float64 `json:"unitCost"`
	LineTotal    float64 `json:"lineTotal"`
}

// TableName sets the table name for ProductionItem
func (ProductionItem) TableName() string {
	return "production_items"
}

// BeforeCreate assigns a UUID when none is provided
func (pi *ProductionItem) BeforeCreate(scope *gorm.Scope) error {
	if pi.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Supplier represents a vendor purchases are made from
type Supplier struct {
	ID        string     `gorm:"primary_key" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Contact   string     `json:"contact"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `sql:"index" json:"deletedAt,omitempty"`
}

// TableName sets the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}

// BeforeCreate assigns a UUID when none is provided
func (s *Supplier) BeforeCreate(scope *gorm.Scope) error {
	if s.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// Purchase represents a committed purchase order. Committing a purchase is
// the only path that increases stock and updates item price fields.
type Purchase struct {
	ID          string         `gorm:"primary_key" json:"id"`
	Date        time.Time      `gorm:"not null" json:"date"`
	SupplierID  string         `gorm:"not null" json:"supplierId"`
	Supplier    *Supplier      `gorm:"foreignkey:SupplierID" json:"supplier,omitempty"`
	TotalAmount float64        `json:"totalAmount"`
	Notes       string         `json:"notes"`
	Items       []PurchaseItem `gorm:"foreignkey:PurchaseID" json:"items,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   *time.Time     `sql:"index" json:"deletedAt,omitempty"`
}

// TableName sets the table name for Purchase
func (Purchase) TableName() string {
	return "purchases"
}

// BeforeCreate assigns a UUID when none is provided
func (p *Purchase) BeforeCreate(scope *gorm.Scope) error {
	if p.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// PurchaseItem is a single line of a purchase
type PurchaseItem struct {
	ID         string  `gorm:"primary_key" json:"id"`
	PurchaseID string  `gorm:"not null;index" json:"purchaseId"`
	ItemID     string  `gorm:"not null" json:"itemId"`
	Item       *Item   `gorm:"foreignkey:ItemID" json:"item,omitempty"`
	Quantity   float64 `gorm:"not null" json:"quantity"`
	UnitID     string  `gorm:"not null" json:"unitId"`
	Unit       *Unit   `gorm:"foreignkey:UnitID" json:"unit,omitempty"`
	UnitPrice  float64 `gorm:"not null" json:"unitPrice"`
	LineTotal  float64 `json:"lineTotal"`
}

// TableName sets the table name for PurchaseItem
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// BeforeCreate assigns a UUID when none is provided
func (pi *PurchaseItem) BeforeCreate(scope *gorm.Scope) error {
	if pi.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

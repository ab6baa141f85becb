package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Recipe represents a production recipe with a native yield and an ordered
// ingredient list. YieldQuantity must be positive; scaling divides by it.
type Recipe struct {
	ID            string             `gorm:"primary_key" json:"id"`
	Name          string             `gorm:"not null" json:"name"`
	Description   string             `json:"description"`
	YieldQuantity float64            `gorm:"not null" json:"yieldQuantity"`
	YieldUnitID   string             `gorm:"not null" json:"yieldUnitId"`
	YieldUnit     *Unit              `gorm:"foreignkey:YieldUnitID" json:"yieldUnit,omitempty"`
	Ingredients   []RecipeIngredient `gorm:"foreignkey:RecipeID" json:"ingredients,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	DeletedAt     *time.Time         `sql:"index" json:"deletedAt,omitempty"`
}

// TableName sets the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns a UUID when none is provided
func (r *Recipe) BeforeCreate(scope *gorm.Scope) error {
	if r.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// RecipeIngredient is an (item, quantity, unit) triple belonging to a recipe.
// Position preserves the order ingredients were entered in.
type RecipeIngredient struct {
	ID       string  `gorm:"primary_key" json:"id"`
	RecipeID string  `gorm:"not null;index" json:"recipeId"`
	ItemID   string  `gorm:"not null" json:"itemId"`
	Item     *Item   `gorm:"foreignkey:ItemID" json:"item,omitempty"`
	Quantity float64 `gorm:"not null" json:"quantity"`
	UnitID   string  `gorm:"not null" json:"unitId"`
	Unit     *Unit   `gorm:"foreignkey:UnitID" json:"unit,omitempty"`
	Position int     `json:"position"`
}

// TableName sets the table name for RecipeIngredient
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// BeforeCreate assigns a UUID when none is provided
func (ri *RecipeIngredient) BeforeCreate(scope *gorm.Scope) error {
	if ri.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

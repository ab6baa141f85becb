package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// User represents an application login. Only the thin JWT check uses this;
// role screens live outside this service.
type User struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Email     string    `gorm:"unique_index;not null" json:"email"`
	Name      string    `json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when none is provided
func (u *User) BeforeCreate(scope *gorm.Scope) error {
	if u.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// ShopSettings holds the bakery's display details used on reports
type ShopSettings struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Name      string    `json:"name"`
	ShortForm string    `json:"shortForm"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for ShopSettings
func (ShopSettings) TableName() string {
	return "shop_settings"
}

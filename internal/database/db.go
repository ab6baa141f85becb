package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"bakehouse/internal/models"
)

var db *gorm.DB

// Init opens the database connection for the configured driver, runs
// migrations and returns the handle. The handle is meant to be passed down
// to services explicitly; GetDB exists for legacy call sites only.
func Init(driver, dsn string) (*gorm.DB, error) {
	handle, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == "sqlite3" {
		// Serialized access avoids "database is locked" errors from sqlite
		handle.DB().SetMaxOpenConns(1)
		handle.Exec("PRAGMA foreign_keys = ON")
	}
	db = handle
	if err := migrate(handle); err != nil {
		handle.Close()
		return nil, err
	}
	return handle, nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

func migrate(handle *gorm.DB) error {
	result := handle.AutoMigrate(
		&models.Unit{},
		&models.ConversionFactor{},
		&models.Item{},
		&models.ItemUnit{},
		&models.Stock{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Supplier{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.Production{},
		&models.ProductionItem{},
		&models.User{},
		&models.ShopSettings{},
	)
	return result.Error
}

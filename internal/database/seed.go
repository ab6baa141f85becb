package database

import (
	"log"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"bakehouse/internal/models"
)

// Seed ensures essential reference data exists in the database: default
// units, the conversion factor pairs between them, an admin login and shop
// settings. Safe to call on every startup.
func Seed(handle *gorm.DB, adminEmail, adminPassword string) error {
	units := []models.Unit{
		{Name: "Gram", Symbol: "g", Type: models.UnitTypeWeight},
		{Name: "Kilogram", Symbol: "kg", Type: models.UnitTypeWeight},
		{Name: "Milliliter", Symbol: "ml", Type: models.UnitTypeVolume},
		{Name: "Liter", Symbol: "L", Type: models.UnitTypeVolume},
		{Name: "Piece", Symbol: "piece", Type: models.UnitTypeCount},
		{Name: "Tray", Symbol: "tray", Type: models.UnitTypeCount},
	}
	bySymbol := make(map[string]string, len(units))
	for _, u := range units {
		var existing models.Unit
		err := handle.Where("symbol = ?", u.Symbol).First(&existing).Error
		if gorm.IsRecordNotFoundError(err) {
			if err := handle.Create(&u).Error; err != nil {
				return err
			}
			bySymbol[u.Symbol] = u.ID
			continue
		}
		if err != nil {
			return err
		}
		bySymbol[u.Symbol] = existing.ID
	}

	factors := []models.ConversionFactor{
		{FromUnitID: bySymbol["g"], ToUnitID: bySymbol["kg"], Factor: 0.001},
		{FromUnitID: bySymbol["kg"], ToUnitID: bySymbol["g"], Factor: 1000},
		{FromUnitID: bySymbol["ml"], ToUnitID: bySymbol["L"], Factor: 0.001},
		{FromUnitID: bySymbol["L"], ToUnitID: bySymbol["ml"], Factor: 1000},
	}
	for _, f := range factors {
		var count int64
		handle.Model(&models.ConversionFactor{}).
			Where("from_unit_id = ? AND to_unit_id = ?", f.FromUnitID, f.ToUnitID).
			Count(&count)
		if count == 0 {
			if err := handle.Create(&f).Error; err != nil {
				return err
			}
		}
	}

	var userCount int64
	handle.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Email:    adminEmail,
			Name:     "Admin User",
			Password: string(hashed),
			Role:     "ADMIN",
		}
		if err := handle.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Seeded admin user %s", adminEmail)
	}

	var settingsCount int64
	handle.Model(&models.ShopSettings{}).Count(&settingsCount)
	if settingsCount == 0 {
		settings := models.ShopSettings{
			ID:        "1",
			Name:      "RISHA FOODS AND BAKERY",
			ShortForm: "RFB",
			Address:   "Server No: 103/1A2, Agaramel, Poonamallee Taluk, Chennai - 600123",
			Email:     "rishafoodsandbakery@gmail.com",
		}
		if err := handle.Create(&settings).Error; err != nil {
			return err
		}
	}

	return nil
}

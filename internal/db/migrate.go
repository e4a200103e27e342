package db

import (
	"stocksim/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.SkuTier{},
		&models.Product{},
		&models.SalesForecast{},
		&models.SalesActual{},
		&models.PurchaseOrder{},
		&models.POItem{},
		&models.Shipment{},
		&models.CapitalConstraint{},
		&models.ScenarioPreset{},
	)
}

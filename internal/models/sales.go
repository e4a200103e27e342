package models

import "time"

// SalesForecast is planned demand for one SKU in one ISO week ("2025-W01").
type SalesForecast struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU       string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_forecast_sku_week" json:"sku"`
	WeekISO   string    `gorm:"type:varchar(8);not null;uniqueIndex:ux_forecast_sku_week;index" json:"week_iso"`
	Qty       int       `gorm:"not null" json:"qty"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (SalesForecast) TableName() string {
	return "sales_forecasts"
}

// SalesActual is recorded demand for one SKU in one ISO week.
type SalesActual struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU       string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_actual_sku_week" json:"sku"`
	WeekISO   string    `gorm:"type:varchar(8);not null;uniqueIndex:ux_actual_sku_week;index" json:"week_iso"`
	Qty       int       `gorm:"not null" json:"qty"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (SalesActual) TableName() string {
	return "sales_actuals"
}

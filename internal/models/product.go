package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	SKU                 string          `gorm:"primaryKey;type:varchar(64)" json:"sku"`
	ProductName         string          `gorm:"type:text;not null" json:"product_name"`
	SkuTier             string          `gorm:"type:varchar(20);index;not null" json:"sku_tier"`
	UnitCostUSD         decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"unit_cost_usd"`
	SafetyStockWeeks    int             `gorm:"not null;default:4" json:"safety_stock_weeks"`
	ProductionLeadWeeks int             `gorm:"not null;default:6" json:"production_lead_weeks"`
	CurrentStock        int             `gorm:"not null;default:0" json:"current_stock"`
	IsActive            bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt           time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

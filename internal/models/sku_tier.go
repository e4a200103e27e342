package models

import "time"

// SkuTier is the priority classification driving safety-stock policy and
// budget ordering. PriorityWeight sorts recommended actions under a capital
// cap; StockoutToleranceDays is the grace period before a stockout counts as
// critical.
type SkuTier struct {
	TierCode              string    `gorm:"primaryKey;type:varchar(20)" json:"tier_code"`
	TierName              string    `gorm:"type:text;not null" json:"tier_name"`
	Description           *string   `gorm:"type:text" json:"description"`
	ServiceLevelTarget    float64   `gorm:"not null;default:0.95" json:"service_level_target"`
	StockoutToleranceDays int       `gorm:"not null;default:0" json:"stockout_tolerance_days"`
	PriorityWeight        int       `gorm:"not null;default:50" json:"priority_weight"`
	DisplayOrder          int       `gorm:"not null;default:0" json:"display_order"`
	IsActive              bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt             time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (SkuTier) TableName() string {
	return "sku_tiers"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	POStatusDraft     = "Draft"
	POStatusConfirmed = "Confirmed"
	POStatusShipped   = "Shipped"
	POStatusDelivered = "Delivered"
	POStatusCancelled = "Cancelled"
)

type PurchaseOrder struct {
	ID               string     `gorm:"primaryKey;type:uuid" json:"id"`
	PONumber         string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"po_number"`
	Status           string     `gorm:"type:varchar(20);not null;index;default:'Draft'" json:"status"`
	PlannedOrderDate *time.Time `gorm:"type:date" json:"planned_order_date"`
	CreatedAt        time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`

	Items []POItem `gorm:"foreignKey:POID" json:"items,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

type POItem struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	POID            string          `gorm:"type:uuid;index;not null" json:"po_id"`
	SKU             string          `gorm:"type:varchar(64);index;not null" json:"sku"`
	OrderedQty      int             `gorm:"not null" json:"ordered_qty"`
	DeliveredQty    int             `gorm:"not null;default:0" json:"delivered_qty"`
	UnitPriceUSD    decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"unit_price_usd"`
	PlannedShipDate *time.Time      `gorm:"type:date" json:"planned_ship_date"`
	CreatedAt       time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (POItem) TableName() string {
	return "po_items"
}

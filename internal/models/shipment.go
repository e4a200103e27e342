package models

import "time"

type Shipment struct {
	ID                 string     `gorm:"primaryKey;type:uuid" json:"id"`
	TrackingNumber     string     `gorm:"type:varchar(64);index;not null" json:"tracking_number"`
	SKU                string     `gorm:"type:varchar(64);index;not null" json:"sku"`
	ShippedQty         int        `gorm:"not null" json:"shipped_qty"`
	ShippingMode       *string    `gorm:"type:varchar(16)" json:"shipping_mode"`
	PlannedArrivalDate *time.Time `gorm:"type:date" json:"planned_arrival_date"`
	ActualArrivalDate  *time.Time `gorm:"type:date;index" json:"actual_arrival_date"`
	ArrivalWeek        *string    `gorm:"type:varchar(8);index" json:"arrival_week"`
	CreatedAt          time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Shipment) TableName() string {
	return "shipments"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalConstraint caps procurement spend for one monthly ("2025-08") or
// quarterly ("2025-Q3") bucket.
type CapitalConstraint struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	PeriodType   string          `gorm:"type:varchar(12);not null" json:"period_type"`
	PeriodKey    string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"period_key"`
	BudgetCapUSD decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"budget_cap_usd"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	Notes        *string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (CapitalConstraint) TableName() string {
	return "capital_constraints"
}

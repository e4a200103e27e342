package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScenarioPreset is a saved set of scenario parameters (e.g. "Peak Season":
// +50% sales on HERO only). Params holds a partial parameter object merged
// over the defaults at run time.
type ScenarioPreset struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Params      datatypes.JSON `gorm:"type:jsonb;not null" json:"params"`
	CreatedAt   time.Time      `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (ScenarioPreset) TableName() string {
	return "scenario_presets"
}

package model

import "time"

// FilterPreset a saved set of list filters belonging to one user. At most
// one preset per user is the default.
type FilterPreset struct {
	FilterPresetID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"preset_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	PresetName     string    `gorm:"type:varchar(100);not null"                     json:"preset_name"`
	FilterCriteria string    `gorm:"type:jsonb;not null;default:'{}'"               json:"-"`
	IsDefault      bool      `gorm:"not null;default:false"                         json:"is_default"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName returns the table name.
func (FilterPreset) TableName() string { return "filter_presets" }

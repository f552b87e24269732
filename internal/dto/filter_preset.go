package dto

import "time"

// ── filter presets ──

// CreateFilterPresetRequest saves a named set of filters.
type CreateFilterPresetRequest struct {
	PresetName     string                 `json:"preset_name"     binding:"required,max=100"`
	FilterCriteria map[string]interface{} `json:"filter_criteria"`
	IsDefault      bool                   `json:"is_default"`
}

// FilterPresetResponse a saved preset with its criteria decoded.
type FilterPresetResponse struct {
	ID             string                 `json:"id"`
	PresetName     string                 `json:"preset_name"`
	FilterCriteria map[string]interface{} `json:"filter_criteria"`
	IsDefault      bool                   `json:"is_default"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

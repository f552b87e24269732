package dto

// ── CSV import/export ──

// RowError a problem found in one CSV row. Row numbers count the header as
// row 1.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult outcome of a CSV import.
type ImportResult struct {
	TotalRows int        `json:"total_rows"`
	Imported  int        `json:"imported"`
	Errors    []RowError `json:"errors"`
	Warnings  []RowError `json:"warnings,omitempty"`
}

// ExportGamesRequest selected games to export; empty exports the caller's
// whole scope.
type ExportGamesRequest struct {
	GameIDs []string `json:"game_ids" binding:"omitempty,dive,uuid"`
}

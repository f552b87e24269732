package dto

// ── levels & catalog ──

// CreateLeagueLevelRequest adds a level to a league.
type CreateLeagueLevelRequest struct {
	LevelName string `json:"level_name" binding:"required,max=100"`
	Notes     string `json:"notes"      binding:"omitempty,max=500"`
}

// LeagueLevelResponse one level with its league name.
type LeagueLevelResponse struct {
	ID         string `json:"id"`
	LeagueID   string `json:"league_id"`
	LeagueName string `json:"league_name"`
	LevelName  string `json:"level_name"`
	Notes      string `json:"notes,omitempty"`
	IsActive   bool   `json:"is_active"`
}

// CatalogQuery filters the predetermined level catalog.
type CatalogQuery struct {
	Sport    string `form:"sport"    binding:"omitempty,max=50"`
	Category string `form:"category" binding:"omitempty,max=50"`
}

// CatalogEntry one level inside a sport's category grouping.
type CatalogEntry struct {
	ID           string `json:"id"`
	LevelName    string `json:"level_name"`
	DisplayOrder int    `json:"display_order"`
	Description  string `json:"description,omitempty"`
}

// SportCatalogResponse a sport's levels grouped by category.
type SportCatalogResponse struct {
	Sport  string                    `json:"sport"`
	Levels map[string][]CatalogEntry `json:"levels"`
}

// ── league search ──

// League status filter values.
const (
	LeagueStatusActive   = "Active"
	LeagueStatusInactive = "Inactive"
	LeagueStatusAll      = "All"
)

// LeagueFilterOptions values a league search form can offer.
type LeagueFilterOptions struct {
	Sports        []string `json:"sports"`
	Seasons       []string `json:"seasons"`
	Levels        []string `json:"levels"`
	StatusOptions []string `json:"status_options"`
}

// LeagueSearchRequest multi-criteria league search. "All" in Sport or
// Season means no filter.
type LeagueSearchRequest struct {
	PaginationRequest
	Search   string `json:"search"    binding:"omitempty,max=100"`
	Sport    string `json:"sport"     binding:"omitempty,max=50"`
	Season   string `json:"season"    binding:"omitempty,max=50"`
	Status   string `json:"status"    binding:"omitempty,oneof=Active Inactive All"`
	DateFrom string `json:"date_from" binding:"omitempty,ymd"`
	DateTo   string `json:"date_to"   binding:"omitempty,ymd"`
}

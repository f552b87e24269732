package dto

// ── leagues ──

// LeagueListRequest league listing parameters.
type LeagueListRequest struct {
	PaginationRequest
	Search          string `form:"search"           binding:"omitempty,max=100"`
	Sport           string `form:"sport"            binding:"omitempty,max=50"`
	Season          string `form:"season"           binding:"omitempty,max=50"`
	IncludeInactive bool   `form:"include_inactive"`
}

// CreateLeagueRequest creates a league.
type CreateLeagueRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Sport       string `json:"sport"       binding:"required,max=50"`
	Season      string `json:"season"      binding:"required,max=50"`
	Levels      string `json:"levels"      binding:"omitempty,max=1000"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateLeagueRequest partial league update.
type UpdateLeagueRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Sport       *string `json:"sport"       binding:"omitempty,min=1,max=50"`
	Season      *string `json:"season"      binding:"omitempty,min=1,max=50"`
	Levels      *string `json:"levels"      binding:"omitempty,max=1000"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsActive    *bool   `json:"is_active"`
}

// LeagueMemberResponse one member of a league.
type LeagueMemberResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

package dto

import (
	"sports-scheduler/internal/model"
	"sports-scheduler/pkg/money"
)

// ── games ──

// GameListRequest game listing parameters.
type GameListRequest struct {
	PaginationRequest
	Search    string `form:"search"     binding:"omitempty,max=100"`
	Sport     string `form:"sport"      binding:"omitempty,max=50"`
	League    string `form:"league"     binding:"omitempty,max=100"`
	Level     string `form:"level"      binding:"omitempty,max=100"`
	Status    string `form:"status"     binding:"omitempty,oneof=scheduled completed cancelled postponed"`
	LinkGroup string `form:"link_group" binding:"omitempty,max=50"`
	DateFrom  string `form:"date_from"  binding:"omitempty,ymd"`
	DateTo    string `form:"date_to"    binding:"omitempty,ymd"`
}

// CreateGameRequest creates a game. AssignedFee, when present, overrides
// the league fee schedule.
type CreateGameRequest struct {
	Date            string       `json:"date"             binding:"required,ymd"`
	Time            string       `json:"time"             binding:"required,hhmm"`
	HomeTeam        string       `json:"home_team"        binding:"required,max=100"`
	AwayTeam        string       `json:"away_team"        binding:"required,max=100"`
	Location        string       `json:"location"         binding:"omitempty,max=100"`
	Sport           string       `json:"sport"            binding:"required,max=50"`
	League          string       `json:"league"           binding:"omitempty,max=100"`
	Level           string       `json:"level"            binding:"omitempty,max=100"`
	OfficialsNeeded int          `json:"officials_needed" binding:"omitempty,min=1,max=10"`
	Notes           string       `json:"notes"            binding:"omitempty,max=500"`
	AssignedFee     *money.Cents `json:"assigned_fee"`
	LinkGroup       string       `json:"link_group"       binding:"omitempty,max=50"`
}

// UpdateGameRequest partial game update. Version, when sent, must match the
// stored row. ClearFeeOverride drops a manual fee so the schedule applies
// again.
type UpdateGameRequest struct {
	Date             *string      `json:"date"             binding:"omitempty,ymd"`
	Time             *string      `json:"time"             binding:"omitempty,hhmm"`
	HomeTeam         *string      `json:"home_team"        binding:"omitempty,min=1,max=100"`
	AwayTeam         *string      `json:"away_team"        binding:"omitempty,min=1,max=100"`
	Location         *string      `json:"location"         binding:"omitempty,max=100"`
	Sport            *string      `json:"sport"            binding:"omitempty,min=1,max=50"`
	League           *string      `json:"league"           binding:"omitempty,max=100"`
	Level            *string      `json:"level"            binding:"omitempty,max=100"`
	OfficialsNeeded  *int         `json:"officials_needed" binding:"omitempty,min=1,max=10"`
	Status           *string      `json:"status"           binding:"omitempty,oneof=scheduled completed cancelled postponed"`
	Notes            *string      `json:"notes"            binding:"omitempty,max=500"`
	AssignedFee      *money.Cents `json:"assigned_fee"`
	ClearFeeOverride bool         `json:"clear_fee_override"`
	Version          *int         `json:"version"`
}

// BulkLinkRequest tags games with one link group.
type BulkLinkRequest struct {
	GameIDs   []string `json:"game_ids"   binding:"required,min=2,dive,required,uuid"`
	LinkGroup string   `json:"link_group" binding:"required,max=50"`
}

// GameResponse a game plus how many officials are on it.
type GameResponse struct {
	model.Game
	AssignedCount int64 `json:"assigned_count"`
}

// NextLinkGroupResponse suggested name for a new link group.
type NextLinkGroupResponse struct {
	LinkGroup string `json:"link_group"`
}

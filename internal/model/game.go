package model

import "sports-scheduler/pkg/money"

// Game statuses.
const (
	GameStatusScheduled = "scheduled"
	GameStatusCompleted = "completed"
	GameStatusCancelled = "cancelled"
	GameStatusPostponed = "postponed"
)

// FeeSource records where a stored fee came from.
type FeeSource string

const (
	FeeSourceNone      FeeSource = "none"
	FeeSourceAutomatic FeeSource = "automatic"
	FeeSourceOverride  FeeSource = "override"
)

// Game games table. Date and time are kept as YYYY-MM-DD and HH:MM text so
// that same-slot comparisons are exact string matches.
type Game struct {
	GameID          string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"game_id"`
	GameDate        string       `gorm:"type:varchar(10);not null;index"                json:"date"`
	GameTime        string       `gorm:"type:varchar(5);not null"                       json:"time"`
	HomeTeam        string       `gorm:"type:varchar(100);not null"                     json:"home_team"`
	AwayTeam        string       `gorm:"type:varchar(100);not null"                     json:"away_team"`
	Location        string       `gorm:"type:varchar(100)"                              json:"location,omitempty"`
	Sport           string       `gorm:"type:varchar(50);not null"                      json:"sport"`
	League          string       `gorm:"type:varchar(100);index"                        json:"league,omitempty"`
	Level           string       `gorm:"type:varchar(100)"                              json:"level,omitempty"`
	OfficialsNeeded int          `gorm:"not null;default:1"                             json:"officials_needed"`
	Status          string       `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"`
	Notes           string       `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	AssignedFee     *money.Cents `gorm:"type:bigint"                                    json:"assigned_fee"`
	FeeSource       FeeSource    `gorm:"type:varchar(20);not null;default:'none'"       json:"fee_source"`
	LinkGroup       *string      `gorm:"type:varchar(50);index"                         json:"link_group,omitempty"`
	VersionedModel
}

// TableName returns the table name.
func (Game) TableName() string { return "games" }

// SharesLinkGroup reports whether both games carry the same non-empty link group.
func (g *Game) SharesLinkGroup(other *Game) bool {
	if g.LinkGroup == nil || other.LinkGroup == nil {
		return false
	}
	return *g.LinkGroup != "" && *g.LinkGroup == *other.LinkGroup
}

// Matchup is the short human label used in logs and exports.
func (g *Game) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}

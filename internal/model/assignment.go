package model

import (
	"time"

	"sports-scheduler/pkg/money"
)

// Assignment statuses.
const (
	AssignmentPending  = "pending"
	AssignmentAssigned = "assigned"
	AssignmentAccepted = "accepted"
	AssignmentDeclined = "declined"
)

// DefaultPosition is used when a request names no position.
const DefaultPosition = "Official"

// ValidAssignmentStatus reports whether s is a known assignment status.
func ValidAssignmentStatus(s string) bool {
	switch s {
	case AssignmentPending, AssignmentAssigned, AssignmentAccepted, AssignmentDeclined:
		return true
	}
	return false
}

// Assignment links one official to one game. (game_id, official_id) is unique.
type Assignment struct {
	AssignmentID string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	GameID       string       `gorm:"type:uuid;not null"                             json:"game_id"`
	OfficialID   string       `gorm:"type:uuid;not null"                             json:"official_id"`
	Position     string       `gorm:"type:varchar(50);not null;default:'Official'"   json:"position"`
	Status       string       `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Fee          *money.Cents `gorm:"type:bigint"                                    json:"fee"`
	FeeSource    FeeSource    `gorm:"type:varchar(20);not null;default:'none'"       json:"fee_source"`
	AssignedBy   string       `gorm:"type:uuid"                                      json:"assigned_by,omitempty"`
	AssignedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"assigned_at"`
	RespondedAt  *time.Time   `json:"responded_at,omitempty"`
	BaseModel

	Game     *Game `gorm:"foreignKey:GameID;references:GameID"     json:"game,omitempty"`
	Official *User `gorm:"foreignKey:OfficialID;references:UserID" json:"official,omitempty"`
}

// TableName returns the table name.
func (Assignment) TableName() string { return "assignments" }

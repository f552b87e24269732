package dto

import (
	"sports-scheduler/pkg/money"
)

// ── assignments ──

// AssignmentListRequest assignment listing parameters.
type AssignmentListRequest struct {
	PaginationRequest
	GameID     string `form:"game_id"     binding:"omitempty,uuid"`
	OfficialID string `form:"official_id" binding:"omitempty,uuid"`
	Status     string `form:"status"      binding:"omitempty,oneof=pending assigned accepted declined"`
	DateFrom   string `form:"date_from"   binding:"omitempty,ymd"`
	DateTo     string `form:"date_to"     binding:"omitempty,ymd"`
}

// CreateAssignmentRequest puts one official on one game.
type CreateAssignmentRequest struct {
	GameID     string       `json:"game_id"     binding:"required,uuid"`
	OfficialID string       `json:"official_id" binding:"required,uuid"`
	Position   string       `json:"position"    binding:"omitempty,max=50"`
	Status     string       `json:"status"      binding:"omitempty,oneof=pending assigned accepted declined"`
	Fee        *money.Cents `json:"fee"`
}

// UpdateAssignmentRequest partial update; nil fields are left unchanged.
type UpdateAssignmentRequest struct {
	OfficialID *string      `json:"official_id" binding:"omitempty,uuid"`
	Position   *string      `json:"position"    binding:"omitempty,min=1,max=50"`
	Status     *string      `json:"status"      binding:"omitempty,oneof=pending assigned accepted declined"`
	Fee        *money.Cents `json:"fee"`
}

// BulkAssignmentRequest many candidates, each processed on its own. Items
// are validated inside the service so that one malformed item cannot fail
// the whole request.
type BulkAssignmentRequest struct {
	Assignments []CreateAssignmentRequest `json:"assignments" binding:"required,min=1,max=500"`
}

// BulkItemError why one candidate was rejected.
type BulkItemError struct {
	Index      int    `json:"index"`
	GameID     string `json:"game_id,omitempty"`
	OfficialID string `json:"official_id,omitempty"`
	Message    string `json:"message"`
}

// BulkAssignmentResponse partial-failure result of a bulk create.
type BulkAssignmentResponse struct {
	CreatedCount int             `json:"created_count"`
	Created      []string        `json:"created"`
	Errors       []BulkItemError `json:"errors"`
}

// RespondRequest an official accepts or declines.
type RespondRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted declined"`
}

package dto

import (
	"time"

	"sports-scheduler/internal/model"
)

// ── users & officials ──

// UserListRequest user/official listing parameters.
type UserListRequest struct {
	PaginationRequest
	Role       string `form:"role"        binding:"omitempty,oneof=superadmin admin assigner scheduler official"`
	Search     string `form:"search"      binding:"omitempty,max=100"`
	ActiveOnly bool   `form:"active_only"`
}

// CreateUserRequest admin creates an account of any role below superadmin
// (superadmins may create superadmins).
type CreateUserRequest struct {
	Username string `json:"username"  binding:"required,min=3,max=50"`
	Password string `json:"password"  binding:"required,min=8,max=128"`
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email"     binding:"omitempty,email,max=255"`
	Phone    string `json:"phone"     binding:"omitempty,max=20"`
	Role     string `json:"role"      binding:"required,oneof=superadmin admin assigner scheduler official"`
}

// OfficialRequest creates an official with profile fields.
type OfficialRequest struct {
	Username          string `json:"username"           binding:"required,min=3,max=50"`
	Password          string `json:"password"           binding:"required,min=8,max=128"`
	FullName          string `json:"full_name"          binding:"required,max=100"`
	Email             string `json:"email"              binding:"omitempty,email,max=255"`
	Phone             string `json:"phone"              binding:"omitempty,max=20"`
	Address           string `json:"address"            binding:"omitempty,max=200"`
	Certifications    string `json:"certifications"     binding:"omitempty,max=1000"`
	Sports            string `json:"sports"             binding:"omitempty,max=500"`
	ExperienceYears   int    `json:"experience_years"   binding:"omitempty,min=0,max=80"`
	AvailabilityNotes string `json:"availability_notes" binding:"omitempty,max=1000"`
}

// UpdateOfficialRequest partial update of an official's profile; nil
// fields are left unchanged.
type UpdateOfficialRequest struct {
	FullName          *string `json:"full_name"          binding:"omitempty,max=100"`
	Email             *string `json:"email"              binding:"omitempty,email,max=255"`
	Phone             *string `json:"phone"              binding:"omitempty,max=20"`
	Address           *string `json:"address"            binding:"omitempty,max=200"`
	Certifications    *string `json:"certifications"     binding:"omitempty,max=1000"`
	Sports            *string `json:"sports"             binding:"omitempty,max=500"`
	ExperienceYears   *int    `json:"experience_years"   binding:"omitempty,min=0,max=80"`
	AvailabilityNotes *string `json:"availability_notes" binding:"omitempty,max=1000"`
	IsActive          *bool   `json:"is_active"`
}

// ProfileUpdateRequest an official edits their own profile.
type ProfileUpdateRequest struct {
	FullName          *string `json:"full_name"          binding:"omitempty,max=100"`
	Email             *string `json:"email"              binding:"omitempty,email,max=255"`
	Phone             *string `json:"phone"              binding:"omitempty,max=20"`
	Address           *string `json:"address"            binding:"omitempty,max=200"`
	Certifications    *string `json:"certifications"     binding:"omitempty,max=1000"`
	Sports            *string `json:"sports"             binding:"omitempty,max=500"`
	AvailabilityNotes *string `json:"availability_notes" binding:"omitempty,max=1000"`
}

// AddLeagueMemberRequest grants a user visibility of a league.
type AddLeagueMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// UserSearchRequest looks an account up by email.
type UserSearchRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// UserSearchResponse a found account. AlreadyInLeague is set for league
// admins only: whether the user already belongs to one of their leagues.
type UserSearchResponse struct {
	UserResponse
	AlreadyInLeague *bool `json:"already_in_league,omitempty"`
}

// UserResponse user without credentials.
type UserResponse struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	FullName          string     `json:"full_name"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Address           string     `json:"address,omitempty"`
	Role              model.Role `json:"role"`
	IsActive          bool       `json:"is_active"`
	Certifications    string     `json:"certifications,omitempty"`
	Sports            string     `json:"sports,omitempty"`
	ExperienceYears   int        `json:"experience_years"`
	AvailabilityNotes string     `json:"availability_notes,omitempty"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// NewUserResponse builds the public view of u.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:                u.UserID,
		Username:          u.Username,
		FullName:          u.FullName,
		Email:             u.Email,
		Phone:             u.Phone,
		Address:           u.Address,
		Role:              u.Role,
		IsActive:          u.IsActive,
		Certifications:    u.Certifications,
		Sports:            u.Sports,
		ExperienceYears:   u.ExperienceYears,
		AvailabilityNotes: u.AvailabilityNotes,
		LastLoginAt:       u.LastLoginAt,
		CreatedAt:         u.CreatedAt,
	}
}

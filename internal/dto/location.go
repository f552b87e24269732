package dto

// ── locations ──

// LocationListRequest location listing parameters.
type LocationListRequest struct {
	Search          string `form:"search"           binding:"omitempty,max=100"`
	City            string `form:"city"             binding:"omitempty,max=50"`
	IncludeInactive bool   `form:"include_inactive"`
}

// CreateLocationRequest creates a venue.
type CreateLocationRequest struct {
	Name          string `json:"name"           binding:"required,min=2,max=100"`
	Address       string `json:"address"        binding:"omitempty,max=200"`
	City          string `json:"city"           binding:"omitempty,max=50"`
	State         string `json:"state"          binding:"omitempty,max=20"`
	ZipCode       string `json:"zip_code"       binding:"omitempty,max=10"`
	ContactPerson string `json:"contact_person" binding:"omitempty,max=100"`
	ContactPhone  string `json:"contact_phone"  binding:"omitempty,max=20"`
	ContactEmail  string `json:"contact_email"  binding:"omitempty,email,max=255"`
	Capacity      *int   `json:"capacity"       binding:"omitempty,min=0,max=200000"`
	Notes         string `json:"notes"          binding:"omitempty,max=500"`
}

// UpdateLocationRequest partial venue update; nil fields are left unchanged.
type UpdateLocationRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=2,max=100"`
	Address       *string `json:"address"        binding:"omitempty,max=200"`
	City          *string `json:"city"           binding:"omitempty,max=50"`
	State         *string `json:"state"          binding:"omitempty,max=20"`
	ZipCode       *string `json:"zip_code"       binding:"omitempty,max=10"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	ContactPhone  *string `json:"contact_phone"  binding:"omitempty,max=20"`
	ContactEmail  *string `json:"contact_email"  binding:"omitempty,email,max=255"`
	Capacity      *int    `json:"capacity"       binding:"omitempty,min=0,max=200000"`
	Notes         *string `json:"notes"          binding:"omitempty,max=500"`
	IsActive      *bool   `json:"is_active"`
}

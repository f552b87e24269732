package dto

import "sports-scheduler/pkg/money"

// ── fees & billing ──

// LeagueFeeRequest creates or replaces a fee.
type LeagueFeeRequest struct {
	LevelName   string       `json:"level_name"   binding:"required,max=100"`
	OfficialFee *money.Cents `json:"official_fee" binding:"required"`
	Notes       string       `json:"notes"        binding:"omitempty,max=500"`
}

// BillToRequest creates or replaces a bill-to entity.
type BillToRequest struct {
	Name          string `json:"name"           binding:"required,max=200"`
	ContactPerson string `json:"contact_person" binding:"omitempty,max=100"`
	Email         string `json:"email"          binding:"omitempty,max=100"`
	Phone         string `json:"phone"          binding:"omitempty,max=20"`
	Address       string `json:"address"        binding:"omitempty,max=200"`
	City          string `json:"city"           binding:"omitempty,max=50"`
	State         string `json:"state"          binding:"omitempty,max=20"`
	ZipCode       string `json:"zip_code"       binding:"omitempty,max=10"`
	TaxID         string `json:"tax_id"         binding:"omitempty,max=50"`
}

// LeagueBillingRequest creates or replaces a billing structure.
type LeagueBillingRequest struct {
	LevelName  string       `json:"level_name"  binding:"required,max=100"`
	BillAmount *money.Cents `json:"bill_amount" binding:"required"`
	BillToID   string       `json:"bill_to_id"  binding:"required,uuid"`
	Notes      string       `json:"notes"       binding:"omitempty,max=500"`
}

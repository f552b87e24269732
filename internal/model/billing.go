package model

import "sports-scheduler/pkg/money"

// BillToEntity is the client invoiced for a league's games.
type BillToEntity struct {
	BillToID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"bill_to_id"`
	Name          string `gorm:"type:varchar(200);not null"                     json:"name"`
	ContactPerson string `gorm:"type:varchar(100)"                              json:"contact_person,omitempty"`
	Email         string `gorm:"type:varchar(100)"                              json:"email,omitempty"`
	Phone         string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Address       string `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	City          string `gorm:"type:varchar(50)"                               json:"city,omitempty"`
	State         string `gorm:"type:varchar(20)"                               json:"state,omitempty"`
	ZipCode       string `gorm:"type:varchar(10)"                               json:"zip_code,omitempty"`
	TaxID         string `gorm:"type:varchar(50)"                               json:"tax_id,omitempty"`
	IsActive      bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName returns the table name.
func (BillToEntity) TableName() string { return "bill_to_entities" }

// LeagueBilling is the amount billed per game for one (league, level).
type LeagueBilling struct {
	LeagueBillingID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"billing_id"`
	LeagueID        string      `gorm:"type:uuid;not null"                             json:"league_id"`
	LevelName       string      `gorm:"type:varchar(100);not null"                     json:"level_name"`
	BillAmount      money.Cents `gorm:"type:bigint;not null"                           json:"bill_amount"`
	BillToID        string      `gorm:"type:uuid;not null"                             json:"bill_to_id"`
	Notes           string      `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	IsActive        bool        `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	BillTo *BillToEntity `gorm:"foreignKey:BillToID;references:BillToID" json:"bill_to,omitempty"`
}

// TableName returns the table name.
func (LeagueBilling) TableName() string { return "league_billing" }

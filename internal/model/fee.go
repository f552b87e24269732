package model

import "sports-scheduler/pkg/money"

// LeagueFee is the officiating fee for one (league, level).
type LeagueFee struct {
	LeagueFeeID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_id"`
	LeagueID    string      `gorm:"type:uuid;not null"                             json:"league_id"`
	LevelName   string      `gorm:"type:varchar(100);not null"                     json:"level_name"`
	OfficialFee money.Cents `gorm:"type:bigint;not null"                           json:"official_fee"`
	Notes       string      `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	IsActive    bool        `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	League *League `gorm:"foreignKey:LeagueID;references:LeagueID" json:"league,omitempty"`
}

// TableName returns the table name.
func (LeagueFee) TableName() string { return "league_fees" }

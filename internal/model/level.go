package model

// LeagueLevel one competition level played in a league.
type LeagueLevel struct {
	LeagueLevelID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"level_id"`
	LeagueID      string `gorm:"type:uuid;not null"                             json:"league_id"`
	LevelName     string `gorm:"type:varchar(100);not null"                     json:"level_name"`
	Notes         string `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	IsActive      bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName returns the table name.
func (LeagueLevel) TableName() string { return "league_levels" }

// PredeterminedLevel a catalog entry suggested when setting up a league.
type PredeterminedLevel struct {
	PredeterminedLevelID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Sport                string `gorm:"type:varchar(50);not null"                      json:"sport"`
	Category             string `gorm:"type:varchar(50);not null"                      json:"category"`
	LevelName            string `gorm:"type:varchar(100);not null"                     json:"level_name"`
	DisplayOrder         int    `gorm:"not null;default:0"                             json:"display_order"`
	Description          string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	IsActive             bool   `gorm:"not null;default:true"                          json:"-"`
}

// TableName returns the table name.
func (PredeterminedLevel) TableName() string { return "predetermined_levels" }

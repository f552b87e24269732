package model

// League leagues table. Games reference leagues by name, not by key.
type League struct {
	LeagueID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"league_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Sport       string `gorm:"type:varchar(50);not null"                      json:"sport"`
	Season      string `gorm:"type:varchar(50);not null"                      json:"season"`
	Levels      string `gorm:"type:text"                                      json:"levels,omitempty"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName returns the table name.
func (League) TableName() string { return "leagues" }

// LeagueAssignment grants a user visibility of a league.
type LeagueAssignment struct {
	LeagueAssignmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"league_assignment_id"`
	UserID             string `gorm:"type:uuid;not null"                             json:"user_id"`
	LeagueID           string `gorm:"type:uuid;not null"                             json:"league_id"`
	AssignedBy         string `gorm:"type:uuid"                                      json:"assigned_by,omitempty"`
	IsActive           bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	League *League `gorm:"foreignKey:LeagueID;references:LeagueID" json:"league,omitempty"`
	User   *User   `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
}

// TableName returns the table name.
func (LeagueAssignment) TableName() string { return "league_assignments" }

package model

import "time"

// User users table. Officials, assigners and administrators share it.
type User struct {
	UserID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username          string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash      string     `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName          string     `gorm:"type:varchar(100)"                              json:"full_name"`
	Email             string     `gorm:"type:varchar(255)"                              json:"email"`
	Phone             string     `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Address           string     `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	Role              Role       `gorm:"type:varchar(20);not null;default:'official'"   json:"role"`
	IsActive          bool       `gorm:"not null;default:true"                          json:"is_active"`
	Certifications    string     `gorm:"type:text"                                      json:"certifications,omitempty"`
	Sports            string     `gorm:"type:text"                                      json:"sports,omitempty"`
	ExperienceYears   int        `gorm:"not null;default:0"                             json:"experience_years"`
	AvailabilityNotes string     `gorm:"type:text"                                      json:"availability_notes,omitempty"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	BaseModel
}

// TableName returns the table name.
func (User) TableName() string { return "users" }

package model

import "time"

// ActivityLog append-only audit trail. Metadata holds a JSON object.
type ActivityLog struct {
	LogID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	UserID     *string   `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	Action     string    `gorm:"type:varchar(50);not null"                      json:"action"`
	EntityType string    `gorm:"type:varchar(50);not null"                      json:"entity_type"`
	EntityID   string    `gorm:"type:varchar(64)"                               json:"entity_id,omitempty"`
	Details    string    `gorm:"type:text"                                      json:"details,omitempty"`
	Metadata   string    `gorm:"type:jsonb;default:'{}'"                        json:"metadata,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName returns the table name.
func (ActivityLog) TableName() string { return "activity_logs" }

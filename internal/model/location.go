package model

// Location a venue games can be played at. Games still carry the venue as
// free text; this is the managed list offered when scheduling.
type Location struct {
	LocationID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"location_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Address       string `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	City          string `gorm:"type:varchar(50)"                               json:"city,omitempty"`
	State         string `gorm:"type:varchar(20)"                               json:"state,omitempty"`
	ZipCode       string `gorm:"type:varchar(10)"                               json:"zip_code,omitempty"`
	ContactPerson string `gorm:"type:varchar(100)"                              json:"contact_person,omitempty"`
	ContactPhone  string `gorm:"type:varchar(20)"                               json:"contact_phone,omitempty"`
	ContactEmail  string `gorm:"type:varchar(255)"                              json:"contact_email,omitempty"`
	Capacity      *int   `json:"capacity,omitempty"`
	Notes         string `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	IsActive      bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName returns the table name.
func (Location) TableName() string { return "locations" }

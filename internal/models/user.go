package models

type User struct {
	BaseModel
	Name    string  `gorm:"not null" json:"name"`
	Email   string  `gorm:"uniqueIndex;not null" json:"email"`
	IsAdmin bool    `gorm:"default:false" json:"is_admin"`
	TeamID  *string `gorm:"type:uuid;index" json:"team_id,omitempty"`

	// Relations
	Team *Team `gorm:"foreignKey:TeamID" json:"-"`
}

type Team struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Members []User `gorm:"foreignKey:TeamID" json:"-"`
}

package model

import "time"

// swagger:model User
type User struct {
	BaseModel

	Username       string     `gorm:"size:50;uniqueIndex" json:"username"`
	Email          string     `gorm:"size:100;uniqueIndex" json:"email"`
	Password       string     `gorm:"size:100" json:"-"`
	ProfilePicture string     `gorm:"size:255" json:"profilePicture"`
	LastSeenAt     *time.Time `json:"lastSeenAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}

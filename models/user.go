package models

import (
	"time"
)

// Index names double as constraint names in unique-violation errors.
const (
	UserEmailIndex    = "idx_users_email"
	UserUsernameIndex = "idx_users_username"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
	Email     *string   `gorm:"size:254;uniqueIndex:idx_users_email" json:"email"`
	Username  string    `gorm:"size:255;not null;uniqueIndex:idx_users_username" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	FirstName string    `gorm:"size:255" json:"first_name"`
	LastName  string    `gorm:"size:255" json:"last_name"`

	Profile       *Profile       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Posts         []Post         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Likes         []Like         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Activity      []ActivityLog  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

package models

import "time"

const ProfileUserIndex = "idx_profiles_user"

// Profile is one-to-one with User; the unique index on user_id enforces it.
type Profile struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"created"`
	UpdatedAt    time.Time `json:"modified"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_profiles_user" json:"user"`
	Biography    string    `gorm:"size:255" json:"biography"`
	ProfileImage string    `gorm:"not null" json:"profile_image"` // object key or external reference
}

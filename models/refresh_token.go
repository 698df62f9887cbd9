package models

import (
	"time"
)

// RefreshToken is the token-store record behind every issued token pair.
// Access tokens carry the JTI of their refresh record, so revoking the record
// revokes both.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	JTI       string    `gorm:"column:jti;size:36;not null;uniqueIndex" json:"jti"`
	ExpiresAt time.Time `gorm:"not null" json:"expiry"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
}

func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

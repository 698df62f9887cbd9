package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created"`
	UpdatedAt time.Time `json:"modified"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	PostID    uint      `gorm:"not null;index" json:"post"`
	Text      string    `gorm:"size:255" json:"text"`

	Likes []Like `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

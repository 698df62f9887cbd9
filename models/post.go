package models

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `gorm:"index" json:"created"`
	UpdatedAt   time.Time      `json:"modified"`
	AuthorID    uint           `gorm:"not null;index" json:"author"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Content     string         `gorm:"size:255" json:"content"`
	PublishDate *time.Time     `json:"publish_date"`
	Category    string         `gorm:"size:255;not null" json:"category"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

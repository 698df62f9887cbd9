package models

import (
	"time"
)

const (
	ActivityPostCreated    = "post_created"
	ActivityPostUpdated    = "post_updated"
	ActivityPostDeleted    = "post_deleted"
	ActivityCommentCreated = "comment_created"
	ActivityCommentUpdated = "comment_updated"
	ActivityCommentDeleted = "comment_deleted"
	ActivityLikeCreated    = "like_created"
	ActivityLikeDeleted    = "like_deleted"
)

const (
	TargetPost    = "post"
	TargetComment = "comment"
	TargetLike    = "like"
)

// ActivityLog keeps no foreign key to its target so entries survive target deletion.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	Activity   string    `gorm:"not null;type:varchar(50)" json:"activity"`
	TargetType string    `gorm:"not null;type:varchar(20)" json:"targetType"`
	TargetID   uint      `gorm:"not null" json:"targetId"`
}

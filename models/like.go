package models

import (
	"time"
)

// Partial unique indexes created in config.InitDB; gorm tags cannot express the WHERE clause.
const (
	LikeUserPostIndex    = "idx_likes_user_post"
	LikeUserCommentIndex = "idx_likes_user_comment"
)

// Like targets exactly one of a post or a comment.
type Like struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created"`
	UpdatedAt time.Time `json:"modified"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	PostID    *uint     `gorm:"index;check:chk_likes_single_target,(post_id IS NULL) <> (comment_id IS NULL)" json:"post"`
	CommentID *uint     `gorm:"index" json:"comment"`
}

package controllers

import (
	"time"

	"github.com/Santiago26009/blog-challenge/models"
)

type userResponse struct {
	Email     *string `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Username  string  `json:"username"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Username: u.Username}
}

type profileResponse struct {
	Biography    string `json:"biography"`
	ProfileImage string `json:"profile_image"`
}

type postResponse struct {
	ID          uint       `json:"id"`
	Author      uint       `json:"author"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	PublishDate *time.Time `json:"publish_date"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
}

func newPostResponse(p *models.Post) postResponse {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Author:      p.AuthorID,
		Title:       p.Title,
		Content:     p.Content,
		PublishDate: p.PublishDate,
		Category:    p.Category,
		Tags:        tags,
	}
}

type commentResponse struct {
	ID   uint   `json:"id"`
	User uint   `json:"user"`
	Post uint   `json:"post"`
	Text string `json:"text"`
}

func newCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{ID: c.ID, User: c.UserID, Post: c.PostID, Text: c.Text}
}

type likeResponse struct {
	ID      uint  `json:"id"`
	User    uint  `json:"user"`
	Post    *uint `json:"post"`
	Comment *uint `json:"comment"`
}

func newLikeResponse(l *models.Like) likeResponse {
	return likeResponse{ID: l.ID, User: l.UserID, Post: l.PostID, Comment: l.CommentID}
}

type activityResponse struct {
	ID         uint      `json:"id"`
	Activity   string    `json:"activity"`
	TargetType string    `json:"target_type"`
	TargetID   uint      `json:"target_id"`
	Created    time.Time `json:"created"`
}

func newActivityResponse(a *models.ActivityLog) activityResponse {
	return activityResponse{
		ID:         a.ID,
		Activity:   a.Activity,
		TargetType: a.TargetType,
		TargetID:   a.TargetID,
		Created:    a.CreatedAt,
	}
}

// mapSlice renders each row with fn.
func mapSlice[M any, R any](rows []M, fn func(*M) R) []R {
	out := make([]R, 0, len(rows))
	for i := range rows {
		out = append(out, fn(&rows[i]))
	}
	return out
}

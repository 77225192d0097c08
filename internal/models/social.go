package models

import "time"

// Post represents a social feed post.
// IsLiked is user-scoped and returned per-fetch; it is never cached beyond
// the current view.
type Post struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url,omitempty"`
	Hashtags     []string  `json:"hashtags"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	IsLiked      bool      `json:"is_liked"`
	CreatedAt    time.Time `json:"created_at"`
}

// Comment represents a comment on a post; comments are append-only
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Story represents a short-lived story entry in the feed
type Story struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HashtagEntity is the canonical entity a hashtag string resolves to
type HashtagEntity struct {
	Tag        string `json:"tag"`
	EntityName string `json:"entity_name"`
	EntityType string `json:"entity_type,omitempty"`
}

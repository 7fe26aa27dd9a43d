package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post is a single entry of the community feed. Feed pages treat posts as
// immutable; only the engagement counters move, and only through the
// reaction reconciliation layer.
type Post struct {
	ID         string                      `json:"id" gorm:"primaryKey"`
	Title      string                      `json:"title"`
	Body       string                      `json:"body"`
	Media      datatypes.JSONSlice[string] `json:"media"`
	CategoryID string                      `json:"category_id" gorm:"index"`
	CreatorRef string                      `json:"creator_ref"`
	Language   string                      `json:"language"`

	LikeCount  int `json:"like_count"`
	ReplyCount int `json:"reply_count"`
	Points     int `json:"points"`

	// RankScore backs the ranked-posts ordering of the self-hosted backend.
	// Hosted backends rank server-side and never expose it.
	RankScore float64 `json:"-" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// LabeledPost is a Post decorated with its resolved category display name,
// the shape the feed hands to presentation.
type LabeledPost struct {
	Post

	CategoryName string `json:"category_name"`
}

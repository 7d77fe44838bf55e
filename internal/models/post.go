package models

import (
	"time"
)

// Like records that a user liked a post. Likes render newest-first.
type Like struct {
	UserID int `json:"user" db:"user_id"`
}

// Comment is a reply embedded in a post. The author's name and avatar are
// copied in at creation time and never re-synced.
type Comment struct {
	ID     string    `json:"id" db:"id"`
	UserID int       `json:"user" db:"user_id"`
	Text   string    `json:"text" db:"text"`
	Name   string    `json:"name" db:"name"`
	Avatar string    `json:"avatar" db:"avatar"`
	Date   time.Time `json:"date" db:"created_at"`
}

// Post carries a denormalized snapshot of its author (name, avatar) taken at
// creation time.
type Post struct {
	ID       int       `json:"id" db:"id"`
	UserID   int       `json:"user" db:"user_id"`
	Text     string    `json:"text" db:"text"`
	Name     string    `json:"name" db:"name"`
	Avatar   string    `json:"avatar" db:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date" db:"created_at"`
}

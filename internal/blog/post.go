package blog

import "time"

// Post is a single entry published by a registered user.
type Post struct {
	ID       int64     `json:"id"`
	AuthorID int64     `json:"author_id"`
	Created  time.Time `json:"created"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`

	// Username is the author's display name, hydrated by the store via a
	// JOIN against the user table. It is never written back.
	Username string `json:"username"`

	// Slug is the URL-safe form of the title, computed by the service for
	// canonical post links. It is not persisted.
	Slug string `json:"-"`
}

// Global field names for validation
const (
	FieldTitle = "title"
	FieldBody  = "body"
)

package blog

import "context"

// Repository defines the data access contract for posts.
//
// Implementations map their storage errors through the dberr package, so
// callers can rely on [dberr.ErrNotFound].
type Repository interface {
	// List returns every post, newest first, with the author's username hydrated.
	List(context context.Context) ([]*Post, error)

	// FindByID returns the post with the given ID, with the author's
	// username hydrated. Returns dberr.ErrNotFound when absent.
	FindByID(context context.Context, id int64) (*Post, error)

	// Create persists a new post and fills in its generated ID.
	Create(context context.Context, post *Post) error

	// Update rewrites the title and body of an existing post.
	// Returns dberr.ErrNotFound when the post no longer exists.
	Update(context context.Context, post *Post) error

	// Delete removes the post with the given ID.
	// Returns dberr.ErrNotFound when the post no longer exists.
	Delete(context context.Context, id int64) error
}

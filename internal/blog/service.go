package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/dberr"
	"github.com/taibuivan/inkstone/internal/platform/sec"
	"github.com/taibuivan/inkstone/internal/platform/validate"
	"github.com/taibuivan/inkstone/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// PostInput holds the submitted form fields for create and update.
type PostInput struct {
	Title string
	Body  string
}

func (service *Service) List(context context.Context) ([]*Post, error) {
	posts, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		post.Slug = slug.From(post.Title)
	}

	return posts, nil
}

// Get returns a post for public display. Existence is required; ownership is not.
func (service *Service) Get(context context.Context, id int64) (*Post, error) {
	return service.getPost(context, id, nil, false)
}

// GetOwned returns a post for mutation by its author.
func (service *Service) GetOwned(context context.Context, id int64, identity *sec.Identity) (*Post, error) {
	return service.getPost(context, id, identity, true)
}

func (service *Service) Create(context context.Context, identity *sec.Identity, input PostInput) (*Post, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	post := &Post{
		AuthorID: identity.UserID,
		Title:    input.Title,
		Body:     input.Body,
		Username: identity.Username,
	}

	if err := service.repo.Create(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.Int64("post_id", post.ID),
		slog.Int64("author_id", post.AuthorID),
	)

	post.Slug = slug.From(post.Title)
	return post, nil
}

func (service *Service) Update(context context.Context, id int64, identity *sec.Identity, input PostInput) (*Post, error) {
	post, err := service.getPost(context, id, identity, true)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Body = input.Body

	if err := service.repo.Update(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_updated",
		slog.Int64("post_id", post.ID),
		slog.Int64("author_id", post.AuthorID),
	)

	post.Slug = slug.From(post.Title)
	return post, nil
}

func (service *Service) Delete(context context.Context, id int64, identity *sec.Identity) error {
	post, err := service.getPost(context, id, identity, true)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, post.ID); err != nil {
		return err
	}

	service.logger.Warn("post_deleted",
		slog.Int64("post_id", post.ID),
		slog.Int64("author_id", post.AuthorID),
	)

	return nil
}

// getPost fetches a post and applies the ownership gate.
//
// Existence is checked before ownership: a missing post is 404 for everyone,
// including signed-in non-owners. When checkAuthor is true the caller must be
// the post's author or the result is 403.
func (service *Service) getPost(context context.Context, id int64, identity *sec.Identity, checkAuthor bool) (*Post, error) {
	post, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Post id %d", id))
		}
		return nil, err
	}

	if checkAuthor && (identity == nil || post.AuthorID != identity.UserID) {
		return nil, apperr.Forbidden("You are not the author of this post")
	}

	post.Slug = slug.From(post.Title)
	return post, nil
}

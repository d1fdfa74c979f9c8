// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog provides the post domain: browsing, authoring, and the
ownership rules that protect mutation.

# Routing Strategy

  - Public: the index and post detail pages are readable by anyone.
  - Protected: create, update, and delete require a signed-in author and a
    valid CSRF token; update and delete additionally require ownership.

The handler translates between HTML forms and the domain [Service].
*/
package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/constants"
	"github.com/taibuivan/inkstone/internal/platform/ctxutil"
	"github.com/taibuivan/inkstone/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkstone/internal/platform/request"
	"github.com/taibuivan/inkstone/internal/platform/render"
)

// Template pages owned by this handler.
const (
	pageIndex  = "blog/index.html"
	pageDetail = "blog/detail.html"
	pageCreate = "blog/create.html"
	pageUpdate = "blog/update.html"
)

// Handler implements the HTTP layer for reading and writing posts.
type Handler struct {
	blogService *Service
	renderer    *render.Engine
}

// NewHandler constructs a new blog [Handler] with its dependencies.
func NewHandler(service *Service, renderer *render.Engine) *Handler {
	return &Handler{blogService: service, renderer: renderer}
}

// Routes returns a [chi.Router] configured with the blog's endpoints.
//
// # Endpoints
//   - GET  /            : Post index, newest first.
//   - GET  /{id}        : Post detail (also /{id}/{slug}; the slug is
//     cosmetic, the id is authoritative).
//   - GET  /create      : New post form.           (signed-in)
//   - POST /create      : Publish a new post.      (signed-in)
//   - GET  /{id}/update : Edit form.               (author only)
//   - POST /{id}/update : Save edits.              (author only)
//   - POST /{id}/delete : Delete the post.         (author only)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public reading
	router.Get("/", handler.index)

	// Authoring (signed-in visitors only; forms carry a CSRF token)
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireLogin)
		protected.Use(middleware.VerifyCSRF(handler.renderer))

		protected.Get("/create", handler.createForm)
		protected.Post("/create", handler.create)
		protected.Get("/{id}/update", handler.updateForm)
		protected.Post("/{id}/update", handler.update)
		protected.Post("/{id}/delete", handler.delete)
	})

	// Registered after the static segments so /create and /{id}/update win.
	router.Get("/{id}", handler.detail)
	router.Get("/{id}/{slug}", handler.detail)

	return router
}

// # Handlers

// index shows every post, newest first.
//
// GET /
func (handler *Handler) index(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.blogService.List(request.Context())
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Render(writer, request, http.StatusOK, pageIndex, render.Data{
		"Posts": posts,
	})
}

// detail shows a single post.
//
// GET /{id} and GET /{id}/{slug}
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.Get(request.Context(), id)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Render(writer, request, http.StatusOK, pageDetail, render.Data{
		"Post": post,
	})
}

// createForm shows the new-post page.
//
// GET /create
func (handler *Handler) createForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Render(writer, request, http.StatusOK, pageCreate, render.Data{
		"Title": "",
		"Body":  "",
	})
}

/*
Create publishes a new post by the signed-in author.

POST /create

Request:
  - Form: title, body

Response:
  - 302: Redirect to / on success
  - 400: Title missing; the form is re-rendered with the submitted values
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	input := PostInput{
		Title: request.PostFormValue(FieldTitle),
		Body:  request.PostFormValue(FieldBody),
	}

	if _, err := handler.blogService.Create(request.Context(), identity, input); err != nil {
		handler.renderFormError(writer, request, pageCreate, render.Data{
			"Title": input.Title,
			"Body":  input.Body,
		}, err)
		return
	}

	handler.renderer.Redirect(writer, request, constants.IndexPath)
}

// updateForm shows the edit page for a post owned by the signed-in author.
//
// GET /{id}/update
func (handler *Handler) updateForm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.GetOwned(request.Context(), id, identity)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Render(writer, request, http.StatusOK, pageUpdate, render.Data{
		"Post": post,
	})
}

/*
Update saves edits to a post owned by the signed-in author.

POST /{id}/update

Request:
  - Form: title, body

Response:
  - 302: Redirect to / on success
  - 400: Title missing; the form is re-rendered with the submitted values
  - 403: Signed-in visitor is not the author
  - 404: Post does not exist
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	input := PostInput{
		Title: request.PostFormValue(FieldTitle),
		Body:  request.PostFormValue(FieldBody),
	}

	if _, err := handler.blogService.Update(request.Context(), id, identity, input); err != nil {
		handler.renderFormError(writer, request, pageUpdate, render.Data{
			"Post": &Post{ID: id, Title: input.Title, Body: input.Body},
		}, err)
		return
	}

	handler.renderer.Redirect(writer, request, constants.IndexPath)
}

/*
Delete removes a post owned by the signed-in author.

POST /{id}/delete

Response:
  - 302: Redirect to / on success
  - 403: Signed-in visitor is not the author
  - 404: Post does not exist
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	if err := handler.blogService.Delete(request.Context(), id, identity); err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Redirect(writer, request, constants.IndexPath)
}

// renderFormError re-renders the form for validation failures so the visitor
// can correct the submission. Anything else (403, 404, storage faults) goes
// to the error page.
func (handler *Handler) renderFormError(writer http.ResponseWriter, request *http.Request, page string, data render.Data, err error) {
	appError := apperr.As(err)
	if appError == nil || !apperr.IsValidation(err) {
		handler.renderer.Error(writer, request, err)
		return
	}

	if sess := ctxutil.GetSession(request.Context()); sess != nil {
		sess.AddFlash(appError.Message)
	}

	handler.renderer.Render(writer, request, appError.HTTPStatus, page, data)
}

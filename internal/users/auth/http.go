// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to sign-in and sign-out.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Server-rendered HTML forms with flash feedback.
  - Security: Binds accounts to rotated server-side sessions.
  - Feedback: Flashes rejected submissions and re-renders the form.

This layer is strictly responsible for transport concerns (form decoding,
status codes, redirects); validation lives in [Service].
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/constants"
	"github.com/taibuivan/inkstone/internal/platform/ctxutil"
	"github.com/taibuivan/inkstone/internal/platform/middleware"
	"github.com/taibuivan/inkstone/internal/platform/render"
)

// # Definitions & Constructors

// Template pages owned by this handler.
const (
	pageRegister = "auth/register.html"
	pageLogin    = "auth/login.html"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Logout).
type Handler struct {
	authService *Service
	renderer    *render.Engine
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, renderer *render.Engine) *Handler {
	return &Handler{authService: service, renderer: renderer}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - GET  /register : Shows the sign-up form.
//   - POST /register : Creates a new account.
//   - GET  /login    : Shows the sign-in form.
//   - POST /login    : Authenticates and binds the session.
//   - GET  /logout   : Unbinds the session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Form endpoints. The POSTs carry the session's CSRF token.
	router.Group(func(forms chi.Router) {
		forms.Use(middleware.VerifyCSRF(handler.renderer))

		forms.Get("/register", handler.registerForm)
		forms.Post("/register", handler.register)
		forms.Get("/login", handler.loginForm)
		forms.Post("/login", handler.login)
	})

	// Logout is pinned as a GET and therefore exempt from CSRF verification.
	router.Get("/logout", handler.logout)

	return router
}

// # Handlers

// registerForm shows the sign-up page.
//
// GET /auth/register
func (handler *Handler) registerForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Render(writer, request, http.StatusOK, pageRegister, render.Data{
		"Username": "",
	})
}

/*
Register handles the creation of a new user account.

POST /auth/register

Description: Validates input, persists a new user, and forwards the visitor
to the sign-in page. Failures flash a message and re-render the form with
the submitted username intact.

Request:
  - Form: username, password

Response:
  - 302: Redirect to /auth/login on success
  - 400: Validation failure
  - 409: Username already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	input := RegisterInput{
		Username: request.PostFormValue(FieldUsername),
		Password: request.PostFormValue(FieldPassword),
	}

	if _, err := handler.authService.Register(request.Context(), input); err != nil {
		handler.renderFormError(writer, request, pageRegister, input.Username, err)
		return
	}

	handler.renderer.Redirect(writer, request, constants.LoginPath)
}

// loginForm shows the sign-in page.
//
// GET /auth/login
func (handler *Handler) loginForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Render(writer, request, http.StatusOK, pageLogin, render.Data{
		"Username": "",
	})
}

/*
Login authenticates a user and establishes a session.

POST /auth/login

Description: Verifies credentials and binds the account to the visitor's
session, then forwards to the index. Failures flash a message and re-render
the form.

Request:
  - Form: username, password

Response:
  - 302: Redirect to / on success
  - 401: Unknown username or wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	if sess == nil {
		handler.renderer.Error(writer, request, apperr.Unauthorized("No session loaded for this request"))
		return
	}

	input := LoginInput{
		Username: request.PostFormValue(FieldUsername),
		Password: request.PostFormValue(FieldPassword),
	}

	if _, err := handler.authService.Login(request.Context(), sess, input); err != nil {
		handler.renderFormError(writer, request, pageLogin, input.Username, err)
		return
	}

	handler.renderer.Redirect(writer, request, constants.IndexPath)
}

/*
Logout terminates the current user session.

GET /auth/logout

Description: Clears the session bag and rotates the client token, then
forwards to the index. Signing out an anonymous visitor is a no-op.

Response:
  - 302: Redirect to /
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if sess := ctxutil.GetSession(request.Context()); sess != nil {
		handler.authService.Logout(sess)
	}

	handler.renderer.Redirect(writer, request, constants.IndexPath)
}

// renderFormError flashes the failure and re-renders the form so the visitor
// can correct the submission without losing the username field. Server-side
// faults go to the error page instead.
func (handler *Handler) renderFormError(writer http.ResponseWriter, request *http.Request, page, username string, err error) {
	appError := apperr.As(err)
	if appError == nil || appError.HTTPStatus >= http.StatusInternalServerError {
		handler.renderer.Error(writer, request, err)
		return
	}

	if sess := ctxutil.GetSession(request.Context()); sess != nil {
		sess.AddFlash(appError.Message)
	}

	handler.renderer.Render(writer, request, appError.HTTPStatus, page, render.Data{
		"Username": username,
	})
}

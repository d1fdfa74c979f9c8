// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management for Inkstone.

It handles user registration with secure password hashing, credential
verification against stored bcrypt hashes, and the binding of authenticated
users to server-side sessions.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Logout, ResolveUser).
  - Repository: Abstracted interface over PostgreSQL or SQLite user storage.
  - Security: Leverages bcrypt hashing and rotated opaque session tokens.

The package ensures that identity data remains consistent and secure throughout
the site's lifecycle.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/dberr"
	"github.com/taibuivan/inkstone/internal/platform/sec"
	"github.com/taibuivan/inkstone/internal/platform/session"
	"github.com/taibuivan/inkstone/internal/platform/validate"
)

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	users  UserRepository
	logger *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(users UserRepository, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member. Both fields are checked before storage is
touched, so a rejected submission leaves no trace. Username uniqueness is
enforced by the database constraint rather than a prior lookup, so concurrent
registrations of the same name cannot race past each other.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: ValidationError (empty field), Conflict (username taken), or
    storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	// Persist the user. The unique constraint is the single authority on
	// duplicate usernames.
	if err := service.users.Create(context, user); err != nil {
		if errors.Is(err, dberr.ErrConflict) {
			return nil, apperr.Conflict(fmt.Sprintf("User %s is already registered", input.Username))
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Login validates user credentials and binds the account to the session.

Description: Verifies identity with a constant-time bcrypt comparison, then
clears the session before binding so state from any previous account cannot
leak into the new sign-in. The clear also rotates the client token on save.

Parameters:
  - context: context.Context
  - sess: *session.Session (the visitor's session)
  - input: LoginInput

Returns:
  - *User: Authenticated entity
  - error: Unauthorized for either an unknown username or a wrong password
*/
func (service *Service) Login(context context.Context, sess *session.Session, input LoginInput) (*User, error) {

	user, err := service.users.FindByUsername(context, input.Username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unauthorized("Incorrect username")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Incorrect password")
	}

	// Reset, then bind. Order matters: Clear wipes everything including any
	// previously signed-in account.
	sess.Clear()
	sess.SetUserID(user.ID)

	service.logger.Info("user_logged_in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

/*
Logout unbinds any account from the session.

Description: Clears the session bag, which also signals the transport layer
to rotate the client token. Logging out an anonymous session is a harmless
no-op, making the operation idempotent.

Parameters:
  - sess: *session.Session
*/
func (service *Service) Logout(sess *session.Session) {
	userID, wasSignedIn := sess.UserID()

	sess.Clear()

	if wasSignedIn {
		service.logger.Info("user_logged_out", slog.Int64("user_id", userID))
	}
}

// # Identity Resolution

/*
ResolveUser turns a stored user ID into a live identity.

Description: Called once per request by the identity middleware. An ID whose
account has since been deleted resolves to nil rather than an error, so stale
sessions degrade to anonymous instead of failing every request.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *sec.Identity: The resolved identity, or nil when the account is gone
  - error: Unexpected storage failures only
*/
func (service *Service) ResolveUser(context context.Context, userID int64) (*sec.Identity, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_resolve_user_failed: %w", err)
	}

	return &sec.Identity{UserID: user.ID, Username: user.Username}, nil
}

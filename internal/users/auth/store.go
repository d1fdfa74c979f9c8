// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Implementations map their storage errors through the dberr package, so
// callers can rely on [dberr.ErrNotFound] and [dberr.ErrConflict].
type UserRepository interface {

	/*
		Create persists a brand-new user account and fills in its generated ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrConflict if the username is taken, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)
}

// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"time"
)

// # Session Data Access

// Store defines the persistence contract for server-side session bags.
//
// Implementations key records by the raw client token; hashing the token
// before storage is the implementation's responsibility.
type Store interface {

	/*
		Load retrieves the bag for the given client token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - map[string]string: The stored bag
		  - error: apperr.NotFound when the token is unknown or expired,
		    otherwise storage failures
	*/
	Load(context context.Context, token string) (map[string]string, error)

	/*
		Save persists the bag under the given token, resetting its TTL.

		Parameters:
		  - context: context.Context
		  - token: string
		  - values: map[string]string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, token string, values map[string]string, ttl time.Duration) error

	/*
		Delete removes the bag for the given token. Unknown tokens are not an error.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}

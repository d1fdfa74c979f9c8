// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the user identity resolved for a single request.
//
// # Why a dedicated type?
//
// Handlers and middleware need the current user without importing the user
// domain package. Identity carries only what transport-level decisions
// require; the full account entity stays in the domain layer.
type Identity struct {
	UserID   int64
	Username string
}

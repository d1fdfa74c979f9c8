// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/constants"
	"github.com/taibuivan/inkstone/internal/platform/ctxutil"
	"github.com/taibuivan/inkstone/internal/platform/sec"
	"github.com/taibuivan/inkstone/internal/platform/session"
)

// UserResolver defines the interface needed to turn a stored user id into a
// live identity.
//
// # Why an interface?
//
// Defining UserResolver here decouples the middleware from the `auth` service
// implementation, allowing us to easily inject mocks during unit testing.
type UserResolver interface {
	// ResolveUser returns the identity for userID, or (nil, nil) when the
	// account no longer exists.
	ResolveUser(ctx context.Context, userID int64) (*sec.Identity, error)
}

// ErrorRenderer defines the behavior needed to surface middleware failures
// as HTML pages. The render engine satisfies it.
type ErrorRenderer interface {
	Error(writer http.ResponseWriter, request *http.Request, err error)
}

// SessionLoader restores the visitor's session from the request cookie.
//
// # Flow
//  1. Load the session bag referenced by the session cookie, if any.
//  2. A missing, unknown, or expired cookie yields a fresh empty session.
//  3. Inject the [*session.Session] into the request context for downstream use.
//
// Only a storage-level failure aborts the request.
func SessionLoader(manager *session.Manager, renderer ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sess, err := manager.Load(request)
			if err != nil {
				renderer.Error(writer, request, err)
				return
			}

			ctx := ctxutil.WithSession(request.Context(), sess)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// ResolveIdentity loads the signed-in user referenced by the session.
//
// # Flow
//  1. Read the stored user id from the session; absent means anonymous.
//  2. Resolve the id via [UserResolver].
//  3. An id whose account has since been deleted also means anonymous.
//  4. Inject the [*sec.Identity] into the request context for downstream use.
func ResolveIdentity(resolver UserResolver, renderer ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sess := ctxutil.GetSession(request.Context())

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if sess == nil {
				next.ServeHTTP(writer, request)
				return
			}
			userID, ok := sess.UserID()
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Identity Resolution ────────────────────────────────────────
			identity, err := resolver.ResolveUser(request.Context(), userID)
			if err != nil {
				renderer.Error(writer, request, err)
				return
			}
			if identity == nil {
				// The account behind the session is gone. Proceed anonymously;
				// the stale session expires on its own TTL.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "identity_resolved",
				"user_id", identity.UserID,
				"username", identity.Username,
			)
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireLogin blocks anonymous requests by redirecting them to the login page.
//
// # Usage
//
// Must be registered in the router AFTER [ResolveIdentity].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, redirect to the login page with HTTP 302.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			http.Redirect(writer, request, constants.LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// VerifyCSRF rejects state-changing requests whose form token does not match
// the token held in the visitor's session.
//
// # Usage
//
// Must be registered in the router AFTER [SessionLoader].
//
// # Flow
//  1. Safe methods (GET, HEAD, OPTIONS, TRACE) pass through untouched.
//  2. Compare the submitted form token against the session token in
//     constant time.
//  3. On mismatch, abort with HTTP 403 Forbidden.
func VerifyCSRF(renderer ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			switch request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
				next.ServeHTTP(writer, request)
				return
			}

			sess := ctxutil.GetSession(request.Context())
			if sess == nil || !sess.VerifyCSRFToken(request.PostFormValue(constants.FieldCSRFToken)) {
				renderer.Error(writer, request, apperr.Forbidden("Invalid CSRF token"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/constants"
	"github.com/taibuivan/inkstone/internal/platform/sec"
)

// Manager owns the session cookie and the save/rotate lifecycle.
//
// # Flow
//
//  1. Load resolves the inbound cookie into a [Session] (fresh one if absent).
//  2. Handlers mutate the session through the request context.
//  3. Save persists pending writes and syncs the cookie, minting a new token
//     whenever the session was cleared.
type Manager struct {
	store  Store
	secure bool
}

// NewManager constructs a [Manager] on top of the given store.
// secure controls the cookie's Secure attribute and should be true whenever
// the site is served over HTTPS.
func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

/*
Load resolves the request's session cookie into a [Session].

Description: A missing cookie or an unknown/expired token yields a fresh
anonymous session. Any other storage failure is returned so the request can
fail loudly instead of silently downgrading to anonymous.

Parameters:
  - request: *http.Request

Returns:
  - *Session: Never nil on success
  - error: Storage failures
*/
func (manager *Manager) Load(request *http.Request) (*Session, error) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return New(), nil
	}

	values, err := manager.store.Load(request.Context(), cookie.Value)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusNotFound {
			// Stale or forged token. Start over with an anonymous session.
			return New(), nil
		}
		return nil, fmt.Errorf("session_load_failed: %w", err)
	}

	return Restore(cookie.Value, values), nil
}

/*
Save persists session mutations and refreshes the client cookie.

Description: No-op when nothing changed. A cleared session has its old
record deleted; if values were written after the clear (login), the bag is
re-saved under a freshly minted token so the client never keeps a
pre-authentication token.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - session: *Session

Returns:
  - error: Token generation or persistence failures
*/
func (manager *Manager) Save(context context.Context, writer http.ResponseWriter, session *Session) error {
	if !session.IsDirty() {
		return nil
	}

	if session.WasCleared() {
		if session.token != "" {
			if err := manager.store.Delete(context, session.token); err != nil {
				return err
			}
		}

		// Bare clear (logout): drop the cookie and stop.
		if session.IsEmpty() {
			if session.token != "" {
				manager.expireCookie(writer)
			}
			session.token = ""
			return nil
		}

		return manager.saveUnderNewToken(context, writer, session)
	}

	if session.token == "" {
		return manager.saveUnderNewToken(context, writer, session)
	}

	return manager.store.Save(context, session.token, session.Values(), constants.SessionTTL)
}

// saveUnderNewToken mints a token, persists the bag, and sets the cookie.
func (manager *Manager) saveUnderNewToken(context context.Context, writer http.ResponseWriter, session *Session) error {
	token, err := sec.GenerateSecureToken(constants.SessionTokenLength)
	if err != nil {
		return fmt.Errorf("session_token_generation_failed: %w", err)
	}

	if err := manager.store.Save(context, token, session.Values(), constants.SessionTTL); err != nil {
		return err
	}

	session.token = token
	manager.writeCookie(writer, token, int(constants.SessionTTL.Seconds()))
	return nil
}

func (manager *Manager) writeCookie(writer http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   manager.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (manager *Manager) expireCookie(writer http.ResponseWriter) {
	manager.writeCookie(writer, "", -1)
}

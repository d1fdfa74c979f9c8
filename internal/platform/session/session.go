// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the cookie-backed session transport.

A session is an opaque key-value bag scoped to one browser. The client holds
only a random token in an HttpOnly cookie; the bag itself lives server-side
in a [Store] keyed by the HMAC of that token, with a rolling TTL.

Architecture:

  - Session: The per-request bag (get/set/clear plus typed helpers).
  - Store: Persistence contract for the bag (Redis in production).
  - Manager: Owns the cookie wiring and the save/rotate lifecycle.

Handlers receive the Session through the request context and never touch
cookies or the store directly. Clearing a session signals the Manager to
rotate the client token, which defends against session fixation.
*/
package session

import (
	"crypto/subtle"
	"encoding/json"
	"strconv"

	"github.com/taibuivan/inkstone/internal/platform/sec"
)

// Well-known bag keys. Everything else stored in a session is opaque to
// this package.
const (
	// KeyUserID holds the authenticated account ID as a decimal string.
	KeyUserID = "user_id"

	// keyFlashes holds a JSON-encoded list of one-shot notification messages.
	keyFlashes = "_flashes"

	// keyCSRF holds the anti-forgery token embedded in HTML forms.
	keyCSRF = "_csrf"
)

// CSRFTokenLength is the byte length of the random anti-forgery token.
const CSRFTokenLength = 32

// Session is a mutable key-value bag bound to a single request.
//
// # Concurrency
//
// A Session is confined to one request goroutine and is not safe for
// concurrent use.
type Session struct {
	token   string
	values  map[string]string
	dirty   bool
	cleared bool
}

// New returns an empty session with no client token yet.
// A token is only minted when the session first persists data.
func New() *Session {
	return &Session{values: make(map[string]string)}
}

// Restore rebuilds a session from a bag previously loaded from the [Store].
func Restore(token string, values map[string]string) *Session {
	if values == nil {
		values = make(map[string]string)
	}
	return &Session{token: token, values: values}
}

// Get returns the value stored under key, or "" if absent.
func (s *Session) Get(key string) string {
	return s.values[key]
}

// Set stores value under key and marks the session for persistence.
func (s *Session) Set(key, value string) {
	s.values[key] = value
	s.dirty = true
}

// Delete removes key from the bag.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// Clear discards every value in the bag.
//
// Clearing also signals the [Manager] to rotate the client token on save,
// so state established before Clear can never leak into the new session.
// Clearing an already-empty session is a harmless no-op bag-wise but still
// requests rotation.
func (s *Session) Clear() {
	s.values = make(map[string]string)
	s.cleared = true
	s.dirty = true
}

// Token returns the opaque client token, or "" for a fresh session.
func (s *Session) Token() string { return s.token }

// IsDirty reports whether the bag has pending writes.
func (s *Session) IsDirty() bool { return s.dirty }

// WasCleared reports whether Clear has been called during this request.
func (s *Session) WasCleared() bool { return s.cleared }

// IsEmpty reports whether the bag holds no values.
func (s *Session) IsEmpty() bool { return len(s.values) == 0 }

// Values returns a copy of the bag for persistence.
func (s *Session) Values() map[string]string {
	copied := make(map[string]string, len(s.values))
	for key, value := range s.values {
		copied[key] = value
	}
	return copied
}

// # Typed Helpers

// UserID returns the authenticated account ID stored in the session.
// The second return value is false for anonymous sessions.
func (s *Session) UserID() (int64, bool) {
	raw := s.values[KeyUserID]
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// SetUserID binds the session to an authenticated account.
func (s *Session) SetUserID(id int64) {
	s.Set(KeyUserID, strconv.FormatInt(id, 10))
}

// # Flash Messages

// AddFlash queues a one-shot notification for the next rendered page.
func (s *Session) AddFlash(message string) {
	flashes := s.peekFlashes()
	flashes = append(flashes, message)
	encoded, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	s.Set(keyFlashes, string(encoded))
}

// Flashes returns all queued notifications and removes them from the bag.
func (s *Session) Flashes() []string {
	flashes := s.peekFlashes()
	if len(flashes) > 0 {
		s.Delete(keyFlashes)
	}
	return flashes
}

func (s *Session) peekFlashes() []string {
	raw := s.values[keyFlashes]
	if raw == "" {
		return nil
	}
	var flashes []string
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		return nil
	}
	return flashes
}

// # CSRF

// CSRFToken returns the session's anti-forgery token, minting one on first use.
func (s *Session) CSRFToken() (string, error) {
	if token := s.values[keyCSRF]; token != "" {
		return token, nil
	}
	token, err := sec.GenerateSecureToken(CSRFTokenLength)
	if err != nil {
		return "", err
	}
	s.Set(keyCSRF, token)
	return token, nil
}

// VerifyCSRFToken reports whether candidate matches the session's anti-forgery
// token. The comparison is constant-time, and a session that never minted a
// token matches nothing.
func (s *Session) VerifyCSRFToken(candidate string) bool {
	expected := s.values[keyCSRF]
	if expected == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) == 1
}

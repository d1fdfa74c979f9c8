// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/constants"
	"github.com/taibuivan/inkstone/internal/platform/session"
)

// memoryStore is an in-memory [session.Store] for manager tests.
type memoryStore struct {
	bags    map[string]map[string]string
	deletes []string
	failing bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{bags: make(map[string]map[string]string)}
}

func (store *memoryStore) Load(_ context.Context, token string) (map[string]string, error) {
	if store.failing {
		return nil, errors.New("store offline")
	}
	bag, ok := store.bags[token]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return bag, nil
}

func (store *memoryStore) Save(_ context.Context, token string, values map[string]string, _ time.Duration) error {
	if store.failing {
		return errors.New("store offline")
	}
	store.bags[token] = values
	return nil
}

func (store *memoryStore) Delete(_ context.Context, token string) error {
	store.deletes = append(store.deletes, token)
	delete(store.bags, token)
	return nil
}

func requestWithCookie(token string) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
	}
	return request
}

func responseCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

/*
TestManager_Load covers cookie-to-session resolution, including the stale
token fallback.
*/
func TestManager_Load(t *testing.T) {
	store := newMemoryStore()
	store.bags["known-token"] = map[string]string{"user_id": "7"}
	manager := session.NewManager(store, false)

	t.Run("no_cookie_yields_fresh_session", func(t *testing.T) {
		sess, err := manager.Load(requestWithCookie(""))
		require.NoError(t, err)
		assert.Empty(t, sess.Token())
		assert.True(t, sess.IsEmpty())
	})

	t.Run("known_token_restores_bag", func(t *testing.T) {
		sess, err := manager.Load(requestWithCookie("known-token"))
		require.NoError(t, err)
		assert.Equal(t, "known-token", sess.Token())

		userID, signedIn := sess.UserID()
		assert.True(t, signedIn)
		assert.Equal(t, int64(7), userID)
	})

	t.Run("unknown_token_yields_fresh_session", func(t *testing.T) {
		sess, err := manager.Load(requestWithCookie("expired-or-forged"))
		require.NoError(t, err)
		assert.Empty(t, sess.Token())
		assert.True(t, sess.IsEmpty())
	})

	t.Run("storage_failure_is_surfaced", func(t *testing.T) {
		failingManager := session.NewManager(&memoryStore{failing: true}, false)
		_, err := failingManager.Load(requestWithCookie("any"))
		assert.Error(t, err)
	})
}

/*
TestManager_Save_CleanSession verifies that an untouched session writes
neither storage nor cookies.
*/
func TestManager_Save_CleanSession(t *testing.T) {
	store := newMemoryStore()
	manager := session.NewManager(store, false)
	recorder := httptest.NewRecorder()

	sess := session.Restore("existing", map[string]string{"user_id": "7"})
	require.NoError(t, manager.Save(context.Background(), recorder, sess))

	assert.Empty(t, store.deletes)
	assert.Empty(t, recorder.Result().Cookies())
}

/*
TestManager_Save_FirstWrite verifies that a fresh session earns a token and a
cookie on its first persisted write.
*/
func TestManager_Save_FirstWrite(t *testing.T) {
	store := newMemoryStore()
	manager := session.NewManager(store, false)
	recorder := httptest.NewRecorder()

	sess := session.New()
	sess.AddFlash("Incorrect password")

	require.NoError(t, manager.Save(context.Background(), recorder, sess))

	// 1. A token was minted and the bag stored under it
	require.NotEmpty(t, sess.Token())
	assert.Contains(t, store.bags, sess.Token())

	// 2. The cookie carries the token with the hardened attributes
	cookie := responseCookie(t, recorder)
	assert.Equal(t, constants.SessionCookieName, cookie.Name)
	assert.Equal(t, sess.Token(), cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Positive(t, cookie.MaxAge)
}

/*
TestManager_Save_ExistingToken verifies that plain writes reuse the client's
token without re-issuing the cookie.
*/
func TestManager_Save_ExistingToken(t *testing.T) {
	store := newMemoryStore()
	store.bags["existing"] = map[string]string{}
	manager := session.NewManager(store, false)
	recorder := httptest.NewRecorder()

	sess := session.Restore("existing", map[string]string{})
	sess.Set("theme", "dark")

	require.NoError(t, manager.Save(context.Background(), recorder, sess))

	assert.Equal(t, "existing", sess.Token())
	assert.Equal(t, "dark", store.bags["existing"]["theme"])
	assert.Empty(t, recorder.Result().Cookies())
}

/*
TestManager_Save_LoginRotation verifies the fixation defense: clearing and
re-populating a session (the login flow) mints a new token, stores the bag
under it, and deletes the old record.
*/
func TestManager_Save_LoginRotation(t *testing.T) {
	store := newMemoryStore()
	store.bags["pre-login"] = map[string]string{"_csrf": "old"}
	manager := session.NewManager(store, false)
	recorder := httptest.NewRecorder()

	sess := session.Restore("pre-login", map[string]string{"_csrf": "old"})
	sess.Clear()
	sess.SetUserID(7)

	require.NoError(t, manager.Save(context.Background(), recorder, sess))

	// 1. The pre-authentication record is gone
	assert.Equal(t, []string{"pre-login"}, store.deletes)
	assert.NotContains(t, store.bags, "pre-login")

	// 2. The bag lives under a brand-new token
	require.NotEmpty(t, sess.Token())
	assert.NotEqual(t, "pre-login", sess.Token())
	assert.Equal(t, "7", store.bags[sess.Token()]["user_id"])

	// 3. The client receives the new token
	cookie := responseCookie(t, recorder)
	assert.Equal(t, sess.Token(), cookie.Value)
	assert.Positive(t, cookie.MaxAge)
}

/*
TestManager_Save_Logout verifies that a bare clear deletes the record and
expires the client cookie.
*/
func TestManager_Save_Logout(t *testing.T) {
	store := newMemoryStore()
	store.bags["signed-in"] = map[string]string{"user_id": "7"}
	manager := session.NewManager(store, false)
	recorder := httptest.NewRecorder()

	sess := session.Restore("signed-in", map[string]string{"user_id": "7"})
	sess.Clear()

	require.NoError(t, manager.Save(context.Background(), recorder, sess))

	// 1. The record is gone and the session is detached from its token
	assert.Equal(t, []string{"signed-in"}, store.deletes)
	assert.Empty(t, sess.Token())

	// 2. The cookie is expired
	cookie := responseCookie(t, recorder)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

/*
TestManager_Save_AnonymousLogout verifies that clearing a session that never
had a token writes nothing at all.
*/
func TestManager_Save_AnonymousLogout(t *testing.T) {
	store := newMemoryStore()
	manager := session.NewManager(store, false)
	recorder := httptest.NewRecorder()

	sess := session.New()
	sess.Clear()

	require.NoError(t, manager.Save(context.Background(), recorder, sess))

	assert.Empty(t, store.deletes)
	assert.Empty(t, recorder.Result().Cookies())
}

// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkstone/internal/platform/session"
)

/*
TestSession_New verifies the state of a fresh anonymous session.
*/
func TestSession_New(t *testing.T) {
	sess := session.New()

	assert.Empty(t, sess.Token())
	assert.True(t, sess.IsEmpty())
	assert.False(t, sess.IsDirty())
	assert.False(t, sess.WasCleared())

	_, signedIn := sess.UserID()
	assert.False(t, signedIn)
}

/*
TestSession_SetGet verifies the basic bag operations and dirty tracking.
*/
func TestSession_SetGet(t *testing.T) {
	sess := session.New()

	// 1. Reading an absent key yields ""
	assert.Empty(t, sess.Get("theme"))

	// 2. Writing marks the session dirty
	sess.Set("theme", "dark")
	assert.Equal(t, "dark", sess.Get("theme"))
	assert.True(t, sess.IsDirty())

	// 3. Deleting removes the key
	sess.Delete("theme")
	assert.Empty(t, sess.Get("theme"))
}

/*
TestSession_UserID verifies the typed account binding helpers.
*/
func TestSession_UserID(t *testing.T) {
	sess := session.New()

	sess.SetUserID(42)

	userID, signedIn := sess.UserID()
	assert.True(t, signedIn)
	assert.Equal(t, int64(42), userID)
}

/*
TestSession_Clear verifies that clearing wipes the bag and requests rotation.
*/
func TestSession_Clear(t *testing.T) {
	sess := session.Restore("old-token", map[string]string{"user_id": "42"})

	sess.Clear()

	assert.True(t, sess.IsEmpty())
	assert.True(t, sess.IsDirty())
	assert.True(t, sess.WasCleared())

	_, signedIn := sess.UserID()
	assert.False(t, signedIn)
}

/*
TestSession_Flashes verifies that flash messages are one-shot: queued, read
once, then gone.
*/
func TestSession_Flashes(t *testing.T) {
	sess := session.New()

	// 1. No flashes initially
	assert.Empty(t, sess.Flashes())

	// 2. Queue preserves order
	sess.AddFlash("Incorrect password")
	sess.AddFlash("Try again")

	flashes := sess.Flashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, "Incorrect password", flashes[0])
	assert.Equal(t, "Try again", flashes[1])

	// 3. Reading consumed them
	assert.Empty(t, sess.Flashes())
}

/*
TestSession_CSRFToken verifies lazy minting and constant-time verification.
*/
func TestSession_CSRFToken(t *testing.T) {
	sess := session.New()

	// 1. First use mints a token and keeps it stable
	token, err := sess.CSRFToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	again, err := sess.CSRFToken()
	require.NoError(t, err)
	assert.Equal(t, token, again)

	// 2. Verification accepts the minted token only
	assert.True(t, sess.VerifyCSRFToken(token))
	assert.False(t, sess.VerifyCSRFToken("forged"))
	assert.False(t, sess.VerifyCSRFToken(""))
}

/*
TestSession_VerifyCSRFToken_Unminted verifies that a session that never issued
a token matches nothing.
*/
func TestSession_VerifyCSRFToken_Unminted(t *testing.T) {
	sess := session.New()

	assert.False(t, sess.VerifyCSRFToken("anything"))
	assert.False(t, sess.VerifyCSRFToken(""))
}

/*
TestSession_Values verifies that the persistence snapshot is a detached copy.
*/
func TestSession_Values(t *testing.T) {
	sess := session.New()
	sess.Set("theme", "dark")

	values := sess.Values()
	values["theme"] = "light"

	assert.Equal(t, "dark", sess.Get("theme"))
}

/*
TestSession_Restore verifies rebuilding a session from stored values.
*/
func TestSession_Restore(t *testing.T) {
	sess := session.Restore("client-token", map[string]string{"user_id": "7"})

	assert.Equal(t, "client-token", sess.Token())
	assert.False(t, sess.IsDirty())

	userID, signedIn := sess.UserID()
	assert.True(t, signedIn)
	assert.Equal(t, int64(7), userID)

	// A nil bag is tolerated
	empty := session.Restore("other-token", nil)
	assert.True(t, empty.IsEmpty())
}

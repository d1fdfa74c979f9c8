// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkstone/internal/platform/ctxutil"
	"github.com/taibuivan/inkstone/internal/platform/sec"
	"github.com/taibuivan/inkstone/internal/platform/session"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that a resolved identity can be stored in context.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()
	identity := &sec.Identity{
		UserID:   123,
		Username: "alice",
	}

	// 1. Initially should be nil (anonymous)
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithIdentity(ctx, identity)
	retrieved := ctxutil.GetIdentity(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, int64(123), retrieved.UserID)
	assert.Equal(t, "alice", retrieved.Username)
}

/*
TestContext_Session verifies that the request session bag can be stored in context.
*/
func TestContext_Session(t *testing.T) {
	ctx := context.Background()

	// 1. Initially should be nil (middleware has not run)
	assert.Nil(t, ctxutil.GetSession(ctx))

	// 2. Inject and retrieve
	sess := session.New()
	sess.SetUserID(7)
	ctx = ctxutil.WithSession(ctx, sess)

	retrieved := ctxutil.GetSession(ctx)
	assert.NotNil(t, retrieved)

	userID, ok := retrieved.UserID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), userID)
}

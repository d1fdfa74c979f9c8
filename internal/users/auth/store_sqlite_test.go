// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkstone/internal/platform/dberr"
	"github.com/taibuivan/inkstone/internal/platform/sqlite"
	"github.com/taibuivan/inkstone/internal/users/auth"
)

// newUserTestDB opens a private in-memory database with the user table.
func newUserTestDB(t *testing.T) *sql.DB {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.Open(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE "user" (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`)
	require.NoError(t, err)

	return db
}

/*
TestSQLiteUserRepository_Create verifies persistence, ID assignment, and the
unique-username conflict.
*/
func TestSQLiteUserRepository_Create(t *testing.T) {
	repository := auth.NewSQLiteUserRepository(newUserTestDB(t))
	ctx := context.Background()

	// 1. Insert assigns the row ID
	user := &auth.User{Username: "alice", PasswordHash: "hashed"}
	require.NoError(t, repository.Create(ctx, user))
	assert.NotZero(t, user.ID)

	// 2. A duplicate username maps to the conflict sentinel
	duplicate := &auth.User{Username: "alice", PasswordHash: "other"}
	err := repository.Create(ctx, duplicate)
	require.Error(t, err)
	assert.ErrorIs(t, err, dberr.ErrConflict)
}

/*
TestSQLiteUserRepository_FindByUsername verifies lookup and the not-found
sentinel.
*/
func TestSQLiteUserRepository_FindByUsername(t *testing.T) {
	repository := auth.NewSQLiteUserRepository(newUserTestDB(t))
	ctx := context.Background()

	created := &auth.User{Username: "alice", PasswordHash: "hashed"}
	require.NoError(t, repository.Create(ctx, created))

	t.Run("existing_user", func(t *testing.T) {
		found, err := repository.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "alice", found.Username)
		assert.Equal(t, "hashed", found.PasswordHash)
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := repository.FindByUsername(ctx, "nobody")
		require.Error(t, err)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}

/*
TestSQLiteUserRepository_FindByID verifies lookup by primary key.
*/
func TestSQLiteUserRepository_FindByID(t *testing.T) {
	repository := auth.NewSQLiteUserRepository(newUserTestDB(t))
	ctx := context.Background()

	created := &auth.User{Username: "alice", PasswordHash: "hashed"}
	require.NoError(t, repository.Create(ctx, created))

	t.Run("existing_id", func(t *testing.T) {
		found, err := repository.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)
	})

	t.Run("unknown_id", func(t *testing.T) {
		_, err := repository.FindByID(ctx, 404)
		require.Error(t, err)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}

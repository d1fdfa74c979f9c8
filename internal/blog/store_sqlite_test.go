// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkstone/internal/blog"
	"github.com/taibuivan/inkstone/internal/platform/dberr"
	"github.com/taibuivan/inkstone/internal/platform/sqlite"
)

// newPostTestDB opens a private in-memory database with the full schema and
// two seeded accounts (alice id=1, bob id=2).
func newPostTestDB(t *testing.T) *sql.DB {
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
		);
		CREATE TABLE post (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			author_id INTEGER NOT NULL REFERENCES "user" (id),
			created   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			title     TEXT NOT NULL,
			body      TEXT NOT NULL
		);
		INSERT INTO "user" (username, password) VALUES ('alice', 'x'), ('bob', 'x');
	`)
	require.NoError(t, err)

	return db
}

/*
TestSQLiteRepository_CreateAndFind verifies insertion and the JOIN that
hydrates the author's username.
*/
func TestSQLiteRepository_CreateAndFind(t *testing.T) {
	repository := blog.NewSQLiteRepository(newPostTestDB(t))
	ctx := context.Background()

	post := &blog.Post{AuthorID: 1, Title: "Hello World", Body: "First!"}
	require.NoError(t, repository.Create(ctx, post))
	assert.NotZero(t, post.ID)

	found, err := repository.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", found.Title)
	assert.Equal(t, "First!", found.Body)
	assert.Equal(t, int64(1), found.AuthorID)
	assert.Equal(t, "alice", found.Username)
	assert.False(t, found.Created.IsZero())

	t.Run("unknown_id", func(t *testing.T) {
		_, err := repository.FindByID(ctx, 404)
		require.Error(t, err)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}

/*
TestSQLiteRepository_List verifies newest-first ordering and per-post author
hydration.
*/
func TestSQLiteRepository_List(t *testing.T) {
	db := newPostTestDB(t)
	repository := blog.NewSQLiteRepository(db)
	ctx := context.Background()

	// Seed with explicit timestamps so the ordering is unambiguous.
	_, err := db.Exec(`
		INSERT INTO post (author_id, created, title, body) VALUES
			(1, '2026-01-01 10:00:00', 'Oldest', 'a'),
			(2, '2026-01-02 10:00:00', 'Middle', 'b'),
			(1, '2026-01-03 10:00:00', 'Newest', 'c');
	`)
	require.NoError(t, err)

	posts, err := repository.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "Newest", posts[0].Title)
	assert.Equal(t, "Middle", posts[1].Title)
	assert.Equal(t, "Oldest", posts[2].Title)

	assert.Equal(t, "alice", posts[0].Username)
	assert.Equal(t, "bob", posts[1].Username)

	t.Run("empty_table", func(t *testing.T) {
		_, err := db.Exec(`DELETE FROM post`)
		require.NoError(t, err)

		posts, err := repository.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

/*
TestSQLiteRepository_Update verifies rewrites and the not-found sentinel for
vanished rows.
*/
func TestSQLiteRepository_Update(t *testing.T) {
	repository := blog.NewSQLiteRepository(newPostTestDB(t))
	ctx := context.Background()

	post := &blog.Post{AuthorID: 1, Title: "Hello World", Body: "First!"}
	require.NoError(t, repository.Create(ctx, post))

	post.Title = "Hello Again"
	post.Body = "Edited"
	require.NoError(t, repository.Update(ctx, post))

	found, err := repository.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello Again", found.Title)
	assert.Equal(t, "Edited", found.Body)

	t.Run("unknown_id", func(t *testing.T) {
		missing := &blog.Post{ID: 404, Title: "x", Body: "y"}
		err := repository.Update(ctx, missing)
		require.Error(t, err)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}

/*
TestSQLiteRepository_Delete verifies removal and the not-found sentinel.
*/
func TestSQLiteRepository_Delete(t *testing.T) {
	repository := blog.NewSQLiteRepository(newPostTestDB(t))
	ctx := context.Background()

	post := &blog.Post{AuthorID: 1, Title: "Hello World", Body: "First!"}
	require.NoError(t, repository.Create(ctx, post))

	require.NoError(t, repository.Delete(ctx, post.ID))

	_, err := repository.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	t.Run("unknown_id", func(t *testing.T) {
		err := repository.Delete(ctx, 404)
		require.Error(t, err)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}

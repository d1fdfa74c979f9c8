// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed fills the configured database with a demo account and a few
// example posts so a fresh checkout has something to render.
//
// It reads the same environment as the server (.env included):
//
//	go run ./scripts
//
// Re-running is safe: when the demo account already exists nothing is written.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/taibuivan/inkstone/internal/blog"
	"github.com/taibuivan/inkstone/internal/platform/config"
	"github.com/taibuivan/inkstone/internal/platform/dberr"
	"github.com/taibuivan/inkstone/internal/platform/migration"
	pgstore "github.com/taibuivan/inkstone/internal/platform/postgres"
	"github.com/taibuivan/inkstone/internal/platform/sec"
	sqlitestore "github.com/taibuivan/inkstone/internal/platform/sqlite"
	"github.com/taibuivan/inkstone/internal/users/auth"
)

const (
	demoUsername = "demo"
	demoPassword = "demo"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	fail(err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		users auth.UserRepository
		posts blog.Repository
		dsn   string
	)

	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, perr := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		fail(perr)
		defer pool.Close()
		users = auth.NewPostgresUserRepository(pool)
		posts = blog.NewPostgresRepository(pool)
		dsn = cfg.DatabaseURL
	case config.DriverSQLite:
		db, serr := sqlitestore.Open(ctx, cfg.SQLitePath, log)
		fail(serr)
		defer db.Close()
		users = auth.NewSQLiteUserRepository(db)
		posts = blog.NewSQLiteRepository(db)
		dsn = cfg.SQLitePath
	}

	fail(migration.RunUp(cfg.DatabaseDriver, dsn, cfg.MigrationPath, log))

	_, err = users.FindByUsername(ctx, demoUsername)
	if err == nil {
		fmt.Printf("account %q already exists; nothing to do\n", demoUsername)
		return
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		fail(err)
	}

	hash, err := sec.HashPassword(demoPassword)
	fail(err)

	author := &auth.User{Username: demoUsername, PasswordHash: hash}
	fail(users.Create(ctx, author))
	fmt.Printf("created account %q (password %q)\n", demoUsername, demoPassword)

	for _, draft := range []blog.PostInput{
		{Title: "Hello, Inkstone", Body: "This post was planted by the seed script."},
		{Title: "Writing posts", Body: "Sign in as demo and use the New link to write your own."},
	} {
		post := &blog.Post{AuthorID: author.ID, Title: draft.Title, Body: draft.Body}
		fail(posts.Create(ctx, post))
		fmt.Printf("created post %d: %s\n", post.ID, post.Title)
	}
}

func fail(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

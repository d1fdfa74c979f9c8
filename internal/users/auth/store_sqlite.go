// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/inkstone/internal/platform/database/schema"
	"github.com/taibuivan/inkstone/internal/platform/dberr"
)

// # User Repository (SQLite)

// SQLiteUserRepository implements the UserRepository interface using database/sql.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLite implementation of the UserRepository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

/*
Create persists a new user record into the user table.

Description: Inserts the account and hydrates the entity with the row ID
assigned by SQLite. Uniqueness is enforced by the username constraint.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: dberr.ErrConflict on duplicate username, or connectivity errors
*/
func (repository *SQLiteUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES (?, ?)`,
		schema.User.Table, schema.User.Username, schema.User.Password,
	)

	result, err := repository.db.ExecContext(context, query, user.Username, user.PasswordHash)
	if err != nil {
		return dberr.Wrap(err, "sqlite_user_repo_create_failed")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return dberr.Wrap(err, "sqlite_user_repo_last_insert_id_failed")
	}
	user.ID = id

	return nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *SQLiteUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = ?`,
		schema.User.ID, schema.User.Username, schema.User.Password,
		schema.User.Table, schema.User.Username,
	)

	user := &User{}
	err := repository.db.QueryRowContext(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "sqlite_user_repo_find_by_username_failed")
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *SQLiteUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = ?`,
		schema.User.ID, schema.User.Username, schema.User.Password,
		schema.User.Table, schema.User.ID,
	)

	user := &User{}
	err := repository.db.QueryRowContext(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "sqlite_user_repo_find_by_id_failed")
	}

	return user, nil
}

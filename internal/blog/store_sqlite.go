package blog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/inkstone/internal/platform/database/schema"
	"github.com/taibuivan/inkstone/internal/platform/dberr"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (repository *SQLiteRepository) List(context context.Context) ([]*Post, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, u.%s
		FROM %s p JOIN %s u ON p.%s = u.%s
		ORDER BY p.%s DESC
	`,
		schema.Post.ID, schema.Post.AuthorID, schema.Post.Created, schema.Post.Title, schema.Post.Body,
		schema.User.Username,
		schema.Post.Table, schema.User.Table, schema.Post.AuthorID, schema.User.ID,
		schema.Post.Created,
	)

	rows, err := repository.db.QueryContext(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "sqlite_post_list_failed")
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Created, &post.Title, &post.Body, &post.Username); err != nil {
			return nil, dberr.Wrap(err, "sqlite_post_scan_failed")
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "sqlite_post_rows_failed")
	}

	return posts, nil
}

func (repository *SQLiteRepository) FindByID(context context.Context, id int64) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, u.%s
		FROM %s p JOIN %s u ON p.%s = u.%s
		WHERE p.%s = ?
	`,
		schema.Post.ID, schema.Post.AuthorID, schema.Post.Created, schema.Post.Title, schema.Post.Body,
		schema.User.Username,
		schema.Post.Table, schema.User.Table, schema.Post.AuthorID, schema.User.ID,
		schema.Post.ID,
	)

	post := &Post{}
	err := repository.db.QueryRowContext(context, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Created, &post.Title, &post.Body, &post.Username,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "sqlite_post_find_by_id_failed")
	}

	return post, nil
}

func (repository *SQLiteRepository) Create(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES (?, ?, ?)
	`,
		schema.Post.Table, schema.Post.AuthorID, schema.Post.Title, schema.Post.Body,
	)

	result, err := repository.db.ExecContext(context, query, post.AuthorID, post.Title, post.Body)
	if err != nil {
		return dberr.Wrap(err, "sqlite_post_create_failed")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return dberr.Wrap(err, "sqlite_post_last_insert_id_failed")
	}
	post.ID = id

	return nil
}

func (repository *SQLiteRepository) Update(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = ?, %s = ?
		WHERE %s = ?
	`,
		schema.Post.Table, schema.Post.Title, schema.Post.Body, schema.Post.ID,
	)

	result, err := repository.db.ExecContext(context, query, post.Title, post.Body, post.ID)
	if err != nil {
		return dberr.Wrap(err, "sqlite_post_update_failed")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "sqlite_post_rows_affected_failed")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *SQLiteRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.Post.Table, schema.Post.ID)

	result, err := repository.db.ExecContext(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "sqlite_post_delete_failed")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "sqlite_post_rows_affected_failed")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

package blog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkstone/internal/platform/database/schema"
	"github.com/taibuivan/inkstone/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Post, error) {
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

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_post_list_failed")
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Created, &post.Title, &post.Body, &post.Username); err != nil {
			return nil, dberr.Wrap(err, "postgres_post_scan_failed")
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_post_rows_failed")
	}

	return posts, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, u.%s
		FROM %s p JOIN %s u ON p.%s = u.%s
		WHERE p.%s = $1
	`,
		schema.Post.ID, schema.Post.AuthorID, schema.Post.Created, schema.Post.Title, schema.Post.Body,
		schema.User.Username,
		schema.Post.Table, schema.User.Table, schema.Post.AuthorID, schema.User.ID,
		schema.Post.ID,
	)

	post := &Post{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Created, &post.Title, &post.Body, &post.Username,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_post_find_by_id_failed")
	}

	return post, nil
}

func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.Post.Table, schema.Post.AuthorID, schema.Post.Title, schema.Post.Body,
		schema.Post.ID, schema.Post.Created,
	)

	err := repository.db.QueryRow(context, query, post.AuthorID, post.Title, post.Body).
		Scan(&post.ID, &post.Created)
	return dberr.Wrap(err, "postgres_post_create_failed")
}

func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1
	`,
		schema.Post.Table, schema.Post.Title, schema.Post.Body, schema.Post.ID,
	)

	cmd, err := repository.db.Exec(context, query, post.ID, post.Title, post.Body)
	if err != nil {
		return dberr.Wrap(err, "postgres_post_update_failed")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Post.Table, schema.Post.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_post_delete_failed")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

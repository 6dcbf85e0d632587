package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

const blogColumns = `id, user_id, content`

func scanBlog(row scanner) (*model.Blog, error) {
	var (
		b      model.Blog
		userID sql.NullInt64
	)
	if err := row.Scan(&b.ID, &userID, &b.Content); err != nil {
		return nil, err
	}
	if userID.Valid {
		b.UserID = &userID.Int64
	}

	return &b, nil
}

func (s *DB) ListBlogs(ctx context.Context) ([]*model.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := []*model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	return blogs, nil
}

func (s *DB) GetBlog(ctx context.Context, id int64) (*model.Blog, error) {
	b, err := scanBlog(s.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("get blog", err)
	}

	return b, nil
}

// CreateBlog inserts a blog. userID is stored as given; no user lookup
// is performed.
func (s *DB) CreateBlog(ctx context.Context, userID *int64, content *string) (*model.Blog, error) {
	b, err := scanBlog(s.db.QueryRowContext(ctx,
		`INSERT INTO blogs (user_id, content) VALUES ($1, $2) RETURNING `+blogColumns,
		userID, content))
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	return b, nil
}

func (s *DB) UpdateBlog(ctx context.Context, id int64, patch model.BlogPatch) (*model.Blog, error) {
	b, err := scanBlog(s.db.QueryRowContext(ctx,
		`UPDATE blogs SET user_id = COALESCE($1, user_id), content = COALESCE($2, content)
		 WHERE id = $3 RETURNING `+blogColumns,
		patch.UserID, patch.Content, id))
	if err != nil {
		return nil, notFound("update blog", err)
	}

	return b, nil
}

func (s *DB) DeleteBlog(ctx context.Context, id int64) (*model.Blog, error) {
	b, err := scanBlog(s.db.QueryRowContext(ctx,
		`DELETE FROM blogs WHERE id = $1 RETURNING `+blogColumns, id))
	if err != nil {
		return nil, notFound("delete blog", err)
	}

	return b, nil
}

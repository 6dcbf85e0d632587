package store

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

const articleColumns = `id, title, body, date`

// now is the clock used to stamp new articles.
var now = time.Now

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*model.Article, error) {
	var a model.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Body, timestamp{&a.Date}); err != nil {
		return nil, err
	}
	a.Date = a.Date.UTC()

	return &a, nil
}

func (s *DB) ListArticles(ctx context.Context) ([]*model.Article, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := []*model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return articles, nil
}

func (s *DB) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("get article", err)
	}

	return a, nil
}

// CreateArticle inserts a new article stamped with the current time,
// truncated to whole seconds. A nil title or body is stored as NULL.
func (s *DB) CreateArticle(ctx context.Context, title, body *string) (*model.Article, error) {
	date := now().UTC().Truncate(time.Second)
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		`INSERT INTO articles (title, body, date) VALUES ($1, $2, $3) RETURNING `+articleColumns,
		title, body, date))
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	return a, nil
}

// UpdateArticle overwrites the fields set in patch. The date is never touched.
func (s *DB) UpdateArticle(ctx context.Context, id int64, patch model.ArticlePatch) (*model.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		`UPDATE articles SET title = COALESCE($1, title), body = COALESCE($2, body)
		 WHERE id = $3 RETURNING `+articleColumns,
		patch.Title, patch.Body, id))
	if err != nil {
		return nil, notFound("update article", err)
	}

	return a, nil
}

// DeleteArticle removes the article and returns it as it was before removal.
func (s *DB) DeleteArticle(ctx context.Context, id int64) (*model.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		`DELETE FROM articles WHERE id = $1 RETURNING `+articleColumns, id))
	if err != nil {
		return nil, notFound("delete article", err)
	}

	return a, nil
}

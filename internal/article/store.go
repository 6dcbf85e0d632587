package article

import (
	"context"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

// Store is the persistence the article handlers need.
type Store interface {
	ListArticles(ctx context.Context) ([]*model.Article, error)
	GetArticle(ctx context.Context, id int64) (*model.Article, error)
	CreateArticle(ctx context.Context, title, body *string) (*model.Article, error)
	UpdateArticle(ctx context.Context, id int64, patch model.ArticlePatch) (*model.Article, error)
	DeleteArticle(ctx context.Context, id int64) (*model.Article, error)
}

// Package store persists articles, users and blogs in a relational
// database. Every operation is a single-row statement; there are no
// multi-row transactions.
package store

import (
	"context"
	"errors"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the requested id or key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would violate a uniqueness rule.
	ErrConflict = errors.New("record conflicts with an existing one")
)

type Articles interface {
	ListArticles(ctx context.Context) ([]*model.Article, error)
	GetArticle(ctx context.Context, id int64) (*model.Article, error)
	CreateArticle(ctx context.Context, title, body *string) (*model.Article, error)
	UpdateArticle(ctx context.Context, id int64, patch model.ArticlePatch) (*model.Article, error)
	DeleteArticle(ctx context.Context, id int64) (*model.Article, error)
}

type Users interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) (*model.User, error)
}

type Blogs interface {
	ListBlogs(ctx context.Context) ([]*model.Blog, error)
	GetBlog(ctx context.Context, id int64) (*model.Blog, error)
	CreateBlog(ctx context.Context, userID *int64, content *string) (*model.Blog, error)
	UpdateBlog(ctx context.Context, id int64, patch model.BlogPatch) (*model.Blog, error)
	DeleteBlog(ctx context.Context, id int64) (*model.Blog, error)
}

// Store is the full record store used by the API.
type Store interface {
	Articles
	Users
	Blogs

	Ping(ctx context.Context) error
	Close() error
}

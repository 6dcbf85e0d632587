// Package app wires the record store, the auth service and the HTTP
// handlers into one application context built once at startup.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogapi/internal/article"
	"github.com/SergeyParamoshkin/blogapi/internal/auth"
	"github.com/SergeyParamoshkin/blogapi/internal/blog"
	"github.com/SergeyParamoshkin/blogapi/internal/errresponse"
	"github.com/SergeyParamoshkin/blogapi/internal/metrics"
	"github.com/SergeyParamoshkin/blogapi/internal/model"
	"github.com/SergeyParamoshkin/blogapi/internal/store"
	"github.com/SergeyParamoshkin/blogapi/internal/user"
)

type ctxKey int8

const ctxKeyLogger ctxKey = iota

type Options struct {
	Store       store.Store
	Logger      *zap.SugaredLogger
	Meter       metric.Meter
	Secret      []byte
	TokenTTL    time.Duration
	CORSOrigins []string
}

// App holds everything a request handler may touch. It is immutable
// after New and shared by all requests.
type App struct {
	sugarLogger *zap.SugaredLogger
	store       store.Store
	auth        *auth.Service
	metrics     *metrics.Metrics
	corsOrigins []string

	articles *article.Handler
	users    *user.Handler
	blogs    *blog.Handler
	login    *auth.Handler
}

func New(opts Options) *App {
	m := metrics.New(opts.Meter)
	svc := auth.New(opts.Store, opts.Secret, opts.TokenTTL, auth.WithIssuedCounter(m.TokensIssued))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &App{
		sugarLogger: opts.Logger,
		store:       opts.Store,
		auth:        svc,
		metrics:     m,
		corsOrigins: origins,
		articles:    article.NewHandler(opts.Store, opts.Logger),
		users:       user.NewHandler(opts.Store, opts.Logger),
		blogs:       blog.NewHandler(opts.Store, opts.Logger),
		login:       auth.NewHandler(svc, opts.Logger),
	}
}

// Auth returns the token service.
func (a *App) Auth() *auth.Service {
	return a.auth
}

// SeedUser creates username with password unless it already exists.
func (a *App) SeedUser(ctx context.Context, username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = a.store.CreateUser(ctx, &model.User{Username: username, PasswordHash: hash})
	if errors.Is(err, store.ErrConflict) {
		a.sugarLogger.Infow("seed user already present", "username", username)

		return nil
	}
	if err != nil {
		return err
	}
	a.sugarLogger.Infow("seed user created", "username", username)

	return nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.Logger)
	r.Use(a.metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = render.Render(w, r, errresponse.ErrNotFound)
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		LoggerFromContext(r.Context()).Debugw("ping")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte("pong")); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	// public routes
	r.Group(func(r chi.Router) {
		r.Get("/articles", a.articles.ListArticles)
		r.With(a.articles.ArticleCtx).Get("/articles/{articleID}", a.articles.GetArticle)
		r.Post("/login", a.login.Login)
		r.Get("/blogs", a.blogs.ListBlogs)
	})

	// protected routes
	r.Group(func(r chi.Router) {
		r.Use(a.auth.Authenticator)

		r.Post("/articles", a.articles.CreateArticle)
		r.Group(func(r chi.Router) {
			r.Use(a.articles.ArticleCtx) // Load the *Article on the request context
			r.Put("/articles/{articleID}", a.articles.UpdateArticle)
			r.Delete("/articles/{articleID}", a.articles.DeleteArticle)
		})
		r.Get("/protected", a.login.Protected)
		r.Post("/profile", a.users.SaveProfile)
		r.Post("/blogs", a.blogs.CreateBlog)
	})

	return r
}

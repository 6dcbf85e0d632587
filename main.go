//
// BLOG API
// ========
// A JSON REST service over articles, users and blogs. Reads are public;
// writes need a bearer token obtained from /login.
//
// Pass -routes to print markdown docs of the router instead of serving:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ BLOGAPI_ADMIN_USER=alice BLOGAPI_ADMIN_PASS=secret go run .
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"username":"alice","password":"secret"}' http://localhost:3333/login
// {"token":"eyJhbGciOi..."}
//
// $ curl -X POST -H "Authorization: Bearer $TOKEN" -d '{"title":"Hi","body":"there"}' http://localhost:3333/articles
// {"id":1,"title":"Hi","body":"there","date":"2024-03-01 12:30:45"}
//
// $ curl http://localhost:3333/articles/1
// {"id":1,"title":"Hi","body":"there","date":"2024-03-01 12:30:45"}
//
// $ curl -X PUT -H "Authorization: Bearer $TOKEN" -d '{"body":"world"}' http://localhost:3333/articles/1
// {"id":1,"title":"Hi","body":"world","date":"2024-03-01 12:30:45"}
//
// $ curl http://localhost:3333/articles/2
// {"error":"Article not found"}
//
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogapi/internal/app"
	"github.com/SergeyParamoshkin/blogapi/internal/config"
	"github.com/SergeyParamoshkin/blogapi/internal/metrics"
	"github.com/SergeyParamoshkin/blogapi/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	if err := run(sugar); err != nil {
		sugar.Fatalw("blogapi stopped", "error", err)
	}
}

func run(sugar *zap.SugaredLogger) error {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	// Passing -routes to the program will generate docs for the router
	// and exit without touching the database.
	if cfg.Routes {
		fmt.Println(routesDoc(sugar))

		return nil
	}

	if cfg.Insecure() {
		sugar.Warnw("JWT_SECRET_KEY is not set, signing tokens with the built-in default secret")
	}

	exporter, err := metrics.NewPrometheusExporter()
	if err != nil {
		return fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()

		return err
	}

	a := app.New(app.Options{
		Store:       db,
		Logger:      sugar,
		Meter:       global.Meter(config.ServiceName),
		Secret:      []byte(cfg.Secret),
		TokenTTL:    cfg.TokenTTL,
		CORSOrigins: cfg.CORSOrigins,
	})
	defer a.Close()

	if cfg.AdminUser != "" {
		if err := a.SeedUser(ctx, cfg.AdminUser, cfg.AdminPass); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}

	r := a.Router()

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	servers := []*http.Server{
		{Addr: cfg.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second},
		{Addr: cfg.DiagAddr, Handler: diagRouter, ReadHeaderTimeout: 10 * time.Second},
	}

	errc := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		go func() {
			sugar.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		sugar.Infow("shutting down")
	case err = <-errc:
		sugar.Errorw("server failed", "error", err)
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if serr := srv.Shutdown(shutCtx); serr != nil {
			sugar.Errorw("shutdown", "addr", srv.Addr, "error", serr)
		}
	}

	return err
}

// routesDoc renders the router as markdown. The app behind it has no
// store, so it must never serve a request.
func routesDoc(sugar *zap.SugaredLogger) string {
	a := app.New(app.Options{
		Logger: sugar,
		Meter:  global.Meter(config.ServiceName),
		Secret: []byte(config.DefaultSecret),
	})

	return docgen.MarkdownRoutesDoc(a.Router(), docgen.MarkdownOpts{
		ProjectPath: "github.com/SergeyParamoshkin/blogapi",
		Intro:       "Routes of the blog API.",
	})
}

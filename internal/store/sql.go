package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/mattn/go-sqlite3"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// pgUniqueViolation is the Postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// DB is a Store backed by database/sql. Queries use $N placeholders,
// which both sqlite3 and pgx accept.
type DB struct {
	db      *sql.DB
	dialect dialect
}

var _ Store = (*DB)(nil)

// Open connects to dsn and checks the connection. A postgres:// or
// postgresql:// URL selects Postgres; anything else is a sqlite3 path.
func Open(ctx context.Context, dsn string) (*DB, error) {
	driver, source, d := "sqlite3", dsn, dialectSQLite
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver, d = "pgx", dialectPostgres
	} else if !strings.Contains(source, "?") {
		source += "?_busy_timeout=5000"
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return &DB{db: db, dialect: d}, nil
}

func (s *DB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *DB) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return false
}

// notFound turns sql.ErrNoRows into ErrNotFound and wraps anything else.
func notFound(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// timestamp scans a date column. sqlite3 hands back time.Time only when
// it can see the declared column type, and raw text otherwise.
type timestamp struct{ t *time.Time }

func (ts timestamp) Scan(v any) error {
	var s string
	switch v := v.(type) {
	case time.Time:
		*ts.t = v

		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", v)
	}

	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*ts.t = t

			return nil
		}
	}

	return fmt.Errorf("scan timestamp: cannot parse %q", s)
}

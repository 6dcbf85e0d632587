package store

import (
	"context"
	"fmt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(25),
		body  VARCHAR(25),
		date  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL DEFAULT '',
		image    VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS blogs (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		content VARCHAR(255)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id    BIGSERIAL PRIMARY KEY,
		title VARCHAR(25),
		body  VARCHAR(25),
		date  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id       BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL DEFAULT '',
		image    VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS blogs (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT,
		content VARCHAR(255)
	)`,
}

// Migrate creates the articles, users and blogs tables if they don't exist.
func (s *DB) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if s.dialect == dialectPostgres {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

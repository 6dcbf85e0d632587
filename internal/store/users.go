package store

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

const userColumns = `id, username, password, image`

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Image); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *DB) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (s *DB) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("get user", err)
	}

	return u, nil
}

// GetUserByUsername looks a user up by exact username match.
func (s *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, notFound("get user by username", err)
	}

	return u, nil
}

// CreateUser inserts user and returns the stored row. A taken username
// yields ErrConflict.
func (s *DB) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, image) VALUES ($1, $2, $3) RETURNING `+userColumns,
		user.Username, user.PasswordHash, user.Image))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create user %q: %w", user.Username, ErrConflict)
		}

		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

func (s *DB) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`UPDATE users SET username = COALESCE($1, username), password = COALESCE($2, password),
		 image = COALESCE($3, image) WHERE id = $4 RETURNING `+userColumns,
		patch.Username, patch.PasswordHash, patch.Image, id))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update user %d: %w", id, ErrConflict)
		}

		return nil, notFound("update user", err)
	}

	return u, nil
}

// DeleteUser removes the user. Blogs referencing it are left in place.
func (s *DB) DeleteUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id))
	if err != nil {
		return nil, notFound("delete user", err)
	}

	return u, nil
}

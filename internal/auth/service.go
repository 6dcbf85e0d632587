// Package auth issues and verifies bearer tokens bound to a username.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
	"github.com/SergeyParamoshkin/blogapi/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("missing or invalid token")
)

// DefaultTokenTTL is used when New is given a non-positive ttl.
const DefaultTokenTTL = 15 * time.Minute

// UserFinder is the part of the store the auth service needs.
type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// Service signs HS256 tokens with a process-wide secret. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	users     UserFinder
	secret    []byte
	ttl       time.Duration
	tokenAuth *jwtauth.JWTAuth
	issued    *metric.Int64Counter
	now       func() time.Time
}

type Option func(*Service)

// WithIssuedCounter counts every token handed out by Issue.
func WithIssuedCounter(c metric.Int64Counter) Option {
	return func(s *Service) { s.issued = &c }
}

func New(users UserFinder, secret []byte, ttl time.Duration, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &Service{
		users:     users,
		secret:    secret,
		ttl:       ttl,
		tokenAuth: jwtauth.New("HS256", secret, nil),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Issue checks the username/password pair and returns a signed token whose
// subject is username. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials.
func (s *Service) Issue(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("issue token: %w", err)
		}
		CheckPassword(decoy(), password)

		return "", ErrInvalidCredentials
	}
	if !CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	if s.issued != nil {
		s.issued.Add(ctx, 1)
	}

	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns its
// subject.
func (s *Service) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}
	token, err := jwtauth.VerifyToken(s.tokenAuth, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token.Subject() == "" {
		return "", ErrInvalidToken
	}

	return token.Subject(), nil
}

package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogapi/internal/errresponse"
)

type ctxKey int

const identityKey ctxKey = iota

// WithIdentity stores the authenticated username on ctx.
func WithIdentity(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, identityKey, username)
}

// Identity returns the username stored by Authenticator, if any.
func Identity(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(identityKey).(string)

	return username, ok
}

// Authenticator rejects requests without a valid "Authorization: Bearer"
// token before they reach the handler, and puts the token subject on the
// request context otherwise.
func (s *Service) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := s.Verify(jwtauth.TokenFromHeader(r))
		if err != nil {
			_ = render.Render(w, r, errresponse.ErrUnauthorized)

			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), username)))
	})
}

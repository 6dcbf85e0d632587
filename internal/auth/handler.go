package auth

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogapi/internal/errresponse"
)

// LoginRequest is the request payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (l *LoginRequest) Bind(r *http.Request) error {
	return nil
}

type TokenResponse struct {
	Token string `json:"token"`
}

func (t *TokenResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type IdentityResponse struct {
	LoggedInAs string `json:"logged_in_as"`
}

func (i *IdentityResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Handler holds the /login and /protected handlers.
type Handler struct {
	svc *Service
	log *zap.SugaredLogger
}

func NewHandler(svc *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Login exchanges a username/password pair for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	data := &LoginRequest{}
	if err := render.Bind(r, data); err != nil && !errors.Is(err, io.EOF) {
		_ = render.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	token, err := h.svc.Issue(r.Context(), data.Username, data.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		h.log.Infow("login rejected", "username", data.Username)
		_ = render.Render(w, r, errresponse.ErrInvalidCredentials)

		return
	case err != nil:
		h.log.Errorw("login failed", "error", err)
		_ = render.Render(w, r, errresponse.ErrInternal(err))

		return
	}

	if err := render.Render(w, r, &TokenResponse{Token: token}); err != nil {
		h.log.Errorw(err.Error())
	}
}

// Protected echoes the identity bound to the presented token.
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	username, _ := Identity(r.Context())
	if err := render.Render(w, r, &IdentityResponse{LoggedInAs: username}); err != nil {
		h.log.Errorw(err.Error())
	}
}

package user

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogapi/internal/auth"
	"github.com/SergeyParamoshkin/blogapi/internal/errresponse"
	"github.com/SergeyParamoshkin/blogapi/internal/model"
	"github.com/SergeyParamoshkin/blogapi/internal/store"
	"github.com/SergeyParamoshkin/blogapi/internal/userpayload"
)

type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
}

// Handler serves POST /profile.
type Handler struct {
	store Store
	log   *zap.SugaredLogger
}

func NewHandler(store Store, log *zap.SugaredLogger) *Handler {
	return &Handler{store: store, log: log}
}

// SaveProfile creates a User after checking the username is free. The
// unique index still catches a concurrent save of the same name.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.ProfileRequest{}
	err := render.Bind(r, data)
	if errors.Is(err, io.EOF) {
		err = data.Bind(r)
	}
	if err != nil {
		_ = render.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	candidate := data.User("")
	_, err = h.store.GetUserByUsername(r.Context(), candidate.Username)
	switch {
	case err == nil:
		_ = render.Render(w, r, errresponse.ErrUsernameTaken)

		return
	case !errors.Is(err, store.ErrNotFound):
		h.internalError(w, r, err)

		return
	}

	if data.Password != nil {
		hash, err := auth.HashPassword(*data.Password)
		if err != nil {
			_ = render.Render(w, r, errresponse.ErrInvalidRequest(err))

			return
		}
		candidate.PasswordHash = hash
	}

	created, err := h.store.CreateUser(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			_ = render.Render(w, r, errresponse.ErrUsernameTaken)

			return
		}
		h.internalError(w, r, err)

		return
	}

	h.log.Infow("profile saved", "user_id", created.ID, "username", created.Username)
	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, userpayload.NewUserPayloadResponse(created)); err != nil {
		h.log.Errorw(err.Error())
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Errorw("user store failure",
		"error", err,
		"request_id", middleware.GetReqID(r.Context()),
	)
	_ = render.Render(w, r, errresponse.ErrInternal(err))
}

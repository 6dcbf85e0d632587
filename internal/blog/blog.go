package blog

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogapi/internal/errresponse"
	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

type Store interface {
	ListBlogs(ctx context.Context) ([]*model.Blog, error)
	CreateBlog(ctx context.Context, userID *int64, content *string) (*model.Blog, error)
}

// BlogRequest is the request payload for POST /blogs. user_id is taken
// as given; it is not checked against existing users.
type BlogRequest struct {
	UserID  *int64  `json:"user_id"`
	Content *string `json:"content"`
}

func (b *BlogRequest) Bind(r *http.Request) error {
	return model.CheckLen("content", b.Content, model.MaxContentLen)
}

// BlogResponse renders {id, user_id, content} for both list and create.
type BlogResponse struct {
	*model.Blog
}

func (rd *BlogResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewBlogListResponse(blogs []*model.Blog) []render.Renderer {
	list := []render.Renderer{}
	for _, b := range blogs {
		list = append(list, &BlogResponse{Blog: b})
	}

	return list
}

type Handler struct {
	store Store
	log   *zap.SugaredLogger
}

func NewHandler(store Store, log *zap.SugaredLogger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.store.ListBlogs(r.Context())
	if err != nil {
		h.internalError(w, r, err)

		return
	}

	if err := render.RenderList(w, r, NewBlogListResponse(blogs)); err != nil {
		h.log.Errorw(err.Error())
	}
}

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	data := &BlogRequest{}
	err := render.Bind(r, data)
	if errors.Is(err, io.EOF) {
		err = data.Bind(r)
	}
	if err != nil {
		_ = render.Render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	b, err := h.store.CreateBlog(r.Context(), data.UserID, data.Content)
	if err != nil {
		h.internalError(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, &BlogResponse{Blog: b}); err != nil {
		h.log.Errorw(err.Error())
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Errorw("blog store failure",
		"error", err,
		"request_id", middleware.GetReqID(r.Context()),
	)
	_ = render.Render(w, r, errresponse.ErrInternal(err))
}

package article

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogapi/internal/articlerequest"
	"github.com/SergeyParamoshkin/blogapi/internal/articleresponse"
	"github.com/SergeyParamoshkin/blogapi/internal/errresponse"
)

// Handler serves the /articles resource.
type Handler struct {
	store Store
	log   *zap.SugaredLogger
}

func NewHandler(store Store, log *zap.SugaredLogger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.store.ListArticles(r.Context())
	if err != nil {
		h.renderStoreError(w, r, err)

		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		err = render.Render(w, r, errresponse.ErrRender(err))
		if err != nil {
			h.log.Errorw(err.Error())
		}

		return
	}
}

// CreateArticle persists the posted Article and returns it
// back to the client as an acknowledgement.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if !h.bind(w, r, data) {
		return
	}

	article, err := h.store.CreateArticle(r.Context(), data.Title, data.Body)
	if err != nil {
		h.renderStoreError(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		h.log.Errorw(err.Error())
	}
}

// GetArticle returns the specific Article. It just fetches the Article
// right off the context, as ArticleCtx already 404'd if it was missing.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		err = render.Render(w, r, errresponse.ErrRender(err))
		if err != nil {
			h.log.Errorw(err.Error())
		}

		return
	}
}

// UpdateArticle applies a partial update: only the fields present in
// the body are overwritten.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())

	data := &articlerequest.ArticleRequest{}
	if !h.bind(w, r, data) {
		return
	}

	article, err := h.store.UpdateArticle(r.Context(), article.ID, data.Patch())
	if err != nil {
		h.renderStoreError(w, r, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		h.log.Errorw(err.Error())
	}
}

// DeleteArticle removes an existing Article from our persistent store
// and returns it as it was.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())

	article, err := h.store.DeleteArticle(r.Context(), article.ID)
	if err != nil {
		h.renderStoreError(w, r, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		h.log.Errorw(err.Error())
	}
}

// bind decodes the body into data. An empty body counts as an empty
// object.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, data render.Binder) bool {
	err := render.Bind(r, data)
	if errors.Is(err, io.EOF) {
		err = data.Bind(r)
	}
	if err != nil {
		_ = render.Render(w, r, errresponse.ErrInvalidRequest(err))

		return false
	}

	return true
}

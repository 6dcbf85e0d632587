package article

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogapi/internal/errresponse"
	"github.com/SergeyParamoshkin/blogapi/internal/model"
	"github.com/SergeyParamoshkin/blogapi/internal/store"
)

type ctxKey int

const articleKey ctxKey = iota

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (h *Handler) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "articleID"), 10, 64)
		if err != nil {
			_ = render.Render(w, r, errresponse.ErrArticleNotFound)

			return
		}

		article, err := h.store.GetArticle(r.Context(), id)
		if err != nil {
			h.renderStoreError(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), articleKey, article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func articleFromContext(ctx context.Context) *model.Article {
	// Handlers below ArticleCtx always find the article here; a miss is a
	// routing bug and the Recoverer turns the panic into a 500.
	return ctx.Value(articleKey).(*model.Article)
}

func (h *Handler) renderStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		_ = render.Render(w, r, errresponse.ErrArticleNotFound)

		return
	}

	h.log.Errorw("article store failure",
		"error", err,
		"request_id", middleware.GetReqID(r.Context()),
	)
	_ = render.Render(w, r, errresponse.ErrInternal(err))
}

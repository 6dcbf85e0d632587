package articlerequest

import (
	"net/http"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

// ArticleRequest is the request payload for the Article data model, used
// by both create and partial update. A field left out of the JSON body
// stays nil.
type ArticleRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`

	ProtectedID *int64 `json:"id"` // override 'id' json to have more control
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	// ids are assigned by the store, never by the client
	a.ProtectedID = nil

	if err := model.CheckLen("title", a.Title, model.MaxTitleLen); err != nil {
		return err
	}

	return model.CheckLen("body", a.Body, model.MaxBodyLen)
}

// Patch returns the fields present in the request.
func (a *ArticleRequest) Patch() model.ArticlePatch {
	return model.ArticlePatch{Title: a.Title, Body: a.Body}
}

package articleresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

// DateLayout is the wire format of Article.Date.
const DateLayout = "2006-01-02 15:04:05"

// ArticleResponse is the response payload for the Article data model.
//
// Date shadows the embedded time.Time so the article goes over the wire
// as {id, title, body, date} with a formatted date string.
type ArticleResponse struct {
	*model.Article

	Date string `json:"date"`
}

func NewArticleListResponse(articles []*model.Article) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}

	return list
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	// Pre-processing before a response is marshalled and sent across the wire
	rd.Date = rd.Article.Date.UTC().Format(DateLayout)

	return nil
}

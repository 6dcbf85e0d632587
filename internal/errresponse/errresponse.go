package errresponse

import (
	"net/http"

	"github.com/go-chi/render"
)

//--
// Error response payloads & renderers
//--

// ErrResponse renderer type for handling all sorts of errors. Every
// endpoint answers failures with the same envelope: {"error": message}.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	ErrorText string `json:"error"` // user-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		ErrorText:      "Error rendering response",
	}
}

// ErrInternal hides err from the caller; it should be logged by the handler.
func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorText:      "Internal server error",
	}
}

// nolint
var (
	ErrNotFound           = &ErrResponse{HTTPStatusCode: http.StatusNotFound, ErrorText: "Resource not found"}
	ErrArticleNotFound    = &ErrResponse{HTTPStatusCode: http.StatusNotFound, ErrorText: "Article not found"}
	ErrInvalidCredentials = &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, ErrorText: "Invalid credentials"}
	ErrUnauthorized       = &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, ErrorText: "Missing or invalid token"}
	ErrUsernameTaken      = &ErrResponse{HTTPStatusCode: http.StatusBadRequest, ErrorText: "Username already exists"}
)

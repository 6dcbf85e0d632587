package userpayload

import (
	"net/http"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

//--
// Request and Response payloads for the /profile endpoint.
//--

// ProfileRequest creates a User. Password is optional; a user saved
// without one cannot log in.
type ProfileRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Image    *string `json:"image"`
}

func (p *ProfileRequest) Bind(r *http.Request) error {
	if err := model.CheckLen("username", p.Username, model.MaxUsernameLen); err != nil {
		return err
	}
	if err := model.CheckLen("password", p.Password, model.MaxPasswordLen); err != nil {
		return err
	}

	return model.CheckLen("image", p.Image, model.MaxImageLen)
}

func (p *ProfileRequest) username() string {
	if p.Username == nil {
		return ""
	}

	return *p.Username
}

// User returns the record to store, with passwordHash already computed
// by the caller.
func (p *ProfileRequest) User(passwordHash string) *model.User {
	return &model.User{Username: p.username(), PasswordHash: passwordHash, Image: p.Image}
}

// UserPayload is the response payload for the User data model. The
// password hash never leaves the server.
type UserPayload struct {
	*model.User
}

func NewUserPayloadResponse(user *model.User) *UserPayload {
	return &UserPayload{User: user}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

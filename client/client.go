package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client talks to a running blog API. Token, once set (by Login or by
// hand), is sent as a bearer token on every request.
type Client struct {
	http.Client
	Addr  string
	Token string
}

// Article mirrors the server's article; Title and Body are nil when they
// were never set.
type Article struct {
	ID    int64   `json:"id"`
	Title *string `json:"title"`
	Body  *string `json:"body"`
	Date  string  `json:"date"`
}

// ArticleInput is the body of create and update calls; nil fields are
// left out of the JSON.
type ArticleInput struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Image    *string `json:"image"`
}

type Profile struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Image    string `json:"image,omitempty"`
}

type Blog struct {
	ID      int64   `json:"id"`
	UserID  *int64  `json:"user_id"`
	Content *string `json:"content"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blogapi: %d %s", e.StatusCode, e.Message)
}

func (c *Client) Ping() (string, error) {
	req, err := http.NewRequest("GET", c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

// Login exchanges credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := map[string]string{"username": username, "password": password}
	if err := c.call(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return "", err
	}
	c.Token = out.Token

	return out.Token, nil
}

// Whoami returns the identity bound to the client's token.
func (c *Client) Whoami(ctx context.Context) (string, error) {
	var out struct {
		LoggedInAs string `json:"logged_in_as"`
	}
	if err := c.call(ctx, http.MethodGet, "/protected", nil, &out); err != nil {
		return "", err
	}

	return out.LoggedInAs, nil
}

func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var out []Article
	err := c.call(ctx, http.MethodGet, "/articles", nil, &out)

	return out, err
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*Article, error) {
	var out Article
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/articles/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateArticle(ctx context.Context, in ArticleInput) (*Article, error) {
	var out Article
	if err := c.call(ctx, http.MethodPost, "/articles", in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id int64, in ArticleInput) (*Article, error) {
	var out Article
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/articles/%d", id), in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) (*Article, error) {
	var out Article
	if err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/articles/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SaveProfile(ctx context.Context, p Profile) (*User, error) {
	var out User
	if err := c.call(ctx, http.MethodPost, "/profile", p, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	var out []Blog
	err := c.call(ctx, http.MethodGet, "/blogs", nil, &out)

	return out, err
}

func (c *Client) CreateBlog(ctx context.Context, userID *int64, content string) (*Blog, error) {
	var out Blog
	in := Blog{UserID: userID, Content: &content}
	if err := c.call(ctx, http.MethodPost, "/blogs", in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)

		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// client_integration_test.go
//go:build integration
// +build integration

package client

import (
	"context"
	"os"
	"testing"
)

// liveClient targets a server started separately, BLOGAPI_URL or the
// default listen address.
func liveClient() *Client {
	addr := os.Getenv("BLOGAPI_URL")
	if addr == "" {
		addr = "http://localhost:3333"
	}

	return &Client{Addr: addr}
}

func TestLivePing(t *testing.T) {
	if s, err := liveClient().Ping(); err != nil || s != "pong" {
		t.Fail()
	}
}

func TestLiveListArticles(t *testing.T) {
	if _, err := liveClient().ListArticles(context.Background()); err != nil {
		t.Fatal(err)
	}
}

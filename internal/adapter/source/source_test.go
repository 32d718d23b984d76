package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
)

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(nil, nil); err == nil {
		t.Errorf("expected error for nil config")
	}
	if _, err := NewClient(&SourceConfig{Token: "k"}, nil); err == nil {
		t.Errorf("expected error for missing URL")
	}
	if _, err := NewClient(&SourceConfig{URL: "http://x"}, nil); !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestVerifyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "good" {
			w.Write([]byte(`{"success": true}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := adapter.DefaultConfig()
	cfg.API.BaseURL = srv.URL

	if err := VerifyToken(context.Background(), cfg, "good", adapter.NullLogger()); err != nil {
		t.Errorf("good token rejected: %v", err)
	}
	if err := VerifyToken(context.Background(), cfg, "bad", adapter.NullLogger()); !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("err = %v, want ErrAuthFailed", err)
	}
}

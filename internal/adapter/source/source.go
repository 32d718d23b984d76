package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// MovieSource combines the repository interface with token validation.
// This is the unified interface the services and setup flow depend on.
type MovieSource interface {
	domain.MovieRepository // Browsing: ListMovies, GetMovie
	ValidateToken(ctx context.Context) error
}

// SourceConfig contains the configuration needed to create a MovieSource
type SourceConfig struct {
	URL      string
	Token    string
	Language string
	Region   string
	Timeout  time.Duration
}

// NewClient creates a new MovieSource.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (MovieSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("API URL is required")
	}

	if cfg.Token == "" {
		return nil, domain.ErrNotConfigured
	}

	return tmdb.NewClient(cfg.URL, cfg.Token, tmdb.Options{
		Language: cfg.Language,
		Region:   cfg.Region,
		Timeout:  cfg.Timeout,
	}, logger), nil
}

// NewClientFromConfig creates a MovieSource from the application config and
// a token resolved by adapter.ResolveToken
func NewClientFromConfig(cfg *adapter.Config, token string, logger *slog.Logger) (MovieSource, error) {
	return NewClient(&SourceConfig{
		URL:      cfg.API.BaseURL,
		Token:    token,
		Language: cfg.API.Language,
		Region:   cfg.API.Region,
		Timeout:  cfg.API.Timeout,
	}, logger)
}

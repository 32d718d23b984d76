package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DetailsService loads the per-movie record shown in the overlay
type DetailsService struct {
	repo   domain.MovieRepository
	store  domain.Store
	logger *slog.Logger
	group  singleflight.Group
}

// NewDetailsService creates a new details service
func NewDetailsService(repo domain.MovieRepository, store domain.Store, logger *slog.Logger) *DetailsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailsService{repo: repo, store: store, logger: logger}
}

// GetDetails returns details for id from the store or the network
func (s *DetailsService) GetDetails(ctx context.Context, id int) (*domain.MovieDetails, error) {
	if d, ok := s.store.GetMovieDetails(id); ok {
		s.logger.Debug("details cache hit", "id", id)
		return d, nil
	}

	v, err, _ := s.group.Do(strconv.Itoa(id), func() (interface{}, error) {
		d, err := s.repo.GetMovie(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.store.SaveMovieDetails(d); err != nil {
			s.logger.Warn("failed to persist details", "id", id, "error", err)
		}
		return d, nil
	})
	if err != nil {
		s.logger.Error("failed to load details", "id", id, "error", err)
		return nil, err
	}
	return v.(*domain.MovieDetails), nil
}

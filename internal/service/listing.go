package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTTL     = 30 * time.Minute
	maxAttempts    = 3
	baseRetryDelay = time.Second // 1s, 2s
	firstPage      = 1
)

// ListingService is the home page's data source. It answers listing
// queries from memory, then the persistent store, then the network.
type ListingService struct {
	repo   domain.MovieRepository
	store  domain.Store
	logger *slog.Logger
	ttl    time.Duration

	group singleflight.Group

	mu     sync.RWMutex
	latest map[string]domain.Query // Last answer per cache key

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewListingService creates a new listing service
func NewListingService(repo domain.MovieRepository, store domain.Store, ttl time.Duration, logger *slog.Logger) *ListingService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ListingService{
		repo:   repo,
		store:  store,
		logger: logger,
		ttl:    ttl,
		latest: make(map[string]domain.Query),
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// SetTTL changes the freshness window for subsequent fetches
func (s *ListingService) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.ttl = ttl
	s.mu.Unlock()
}

// Fetch returns the listing for category, using cached data while fresh
func (s *ListingService) Fetch(ctx context.Context, category domain.Category) domain.Query {
	key := category.CacheKey()
	now := s.now()

	s.mu.RLock()
	ttl := s.ttl
	q, ok := s.latest[key]
	s.mu.RUnlock()

	if ok && q.Loaded() && !q.Stale && q.Data.IsFresh(ttl, now) {
		s.logger.Debug("memory cache hit", "key", key)
		return q
	}

	if rs, ok := s.store.GetResultSet(key); ok {
		if rs.IsFresh(ttl, now) {
			s.logger.Debug("store cache hit", "key", key, "age", now.Sub(rs.FetchedAt))
			return s.remember(domain.Query{Key: key, Status: domain.QuerySuccess, Data: rs})
		}
		s.logger.Debug("store cache expired", "key", key, "age", now.Sub(rs.FetchedAt))
	}

	return s.fetchRemote(ctx, category)
}

// Refetch skips the caches and asks the network. Cached data is still
// served, marked stale, if the request fails.
func (s *ListingService) Refetch(ctx context.Context, category domain.Category) domain.Query {
	return s.fetchRemote(ctx, category)
}

// Peek returns whatever is cached for category without touching the
// network. Status is loading when nothing is cached.
func (s *ListingService) Peek(category domain.Category) domain.Query {
	key := category.CacheKey()

	s.mu.RLock()
	ttl := s.ttl
	q, ok := s.latest[key]
	s.mu.RUnlock()
	if ok && q.Loaded() {
		return q
	}

	if rs, ok := s.store.GetResultSet(key); ok {
		return domain.Query{Key: key, Status: domain.QuerySuccess, Data: rs, Stale: !rs.IsFresh(ttl, s.now())}
	}
	return domain.Query{Key: key, Status: domain.QueryLoading}
}

// Invalidate drops the cached listing for category
func (s *ListingService) Invalidate(category domain.Category) {
	key := category.CacheKey()
	s.mu.Lock()
	delete(s.latest, key)
	s.mu.Unlock()
	s.store.Invalidate(key)
}

// GetCachedResultSet implements domain.ListingQueries
func (s *ListingService) GetCachedResultSet(category domain.Category) (*domain.ResultSet, bool) {
	q := s.Peek(category)
	if !q.Loaded() {
		return nil, false
	}
	return q.Data, true
}

// GetCachedDetails implements domain.ListingQueries
func (s *ListingService) GetCachedDetails(id int) (*domain.MovieDetails, bool) {
	return s.store.GetMovieDetails(id)
}

func (s *ListingService) fetchRemote(ctx context.Context, category domain.Category) domain.Query {
	key := category.CacheKey()

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.loadWithRetry(ctx, category)
	})
	if shared {
		s.logger.Debug("joined in-flight fetch", "key", key)
	}

	if err != nil {
		if stale, ok := s.staleFallback(key); ok {
			s.logger.Warn("serving stale listing", "key", key, "error", err)
			return s.remember(domain.Query{Key: key, Status: domain.QuerySuccess, Data: stale, Err: err, Stale: true})
		}
		s.logger.Error("failed to fetch listing", "key", key, "error", err)
		return domain.Query{Key: key, Status: domain.QueryError, Err: fmt.Errorf("fetch %s: %w", category, err)}
	}

	rs := v.(*domain.ResultSet)
	if err := s.store.SaveResultSet(key, rs); err != nil {
		s.logger.Warn("failed to persist listing", "key", key, "error", err)
	}
	s.logger.Info("loaded listing", "key", key, "count", rs.Len())
	return s.remember(domain.Query{Key: key, Status: domain.QuerySuccess, Data: rs})
}

// loadWithRetry tries the network up to maxAttempts times with
// exponential backoff, giving up early on non-retryable errors
func (s *ListingService) loadWithRetry(ctx context.Context, category domain.Category) (*domain.ResultSet, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1))
			s.logger.Debug("retrying listing", "category", category, "attempt", attempt, "delay", delay)
			if err := s.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		rs, err := s.repo.ListMovies(ctx, category, firstPage)
		if err == nil {
			if rs.FetchedAt.IsZero() {
				rs.FetchedAt = s.now()
			}
			return rs, nil
		}

		lastErr = err
		if !domain.IsRetryable(err) || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (s *ListingService) staleFallback(key string) (*domain.ResultSet, bool) {
	s.mu.RLock()
	q, ok := s.latest[key]
	s.mu.RUnlock()
	if ok && q.Loaded() {
		return q.Data, true
	}
	return s.store.GetResultSet(key)
}

func (s *ListingService) remember(q domain.Query) domain.Query {
	s.mu.Lock()
	s.latest[q.Key] = q
	s.mu.Unlock()
	return q
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

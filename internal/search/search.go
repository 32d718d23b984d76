package search

import (
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// Result is a matched movie with highlight metadata
type Result struct {
	Movie          domain.Movie
	Category       domain.Category // Listing the movie was found in
	MatchedIndexes []int
	Score          int
}

// Service searches titles across the cached listings
type Service struct {
	queries domain.ListingQueries
	logger  *slog.Logger
}

// NewService creates a new search service
func NewService(queries domain.ListingQueries, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{queries: queries, logger: logger}
}

// FilterLocal searches cached data only and never blocks on the network.
// categories selects the listings to search, in priority order; a movie in
// several listings is reported once, under the first.
func (s *Service) FilterLocal(query string, categories []domain.Category) []Result {
	if query == "" {
		return nil
	}

	var items []Result
	seen := make(map[int]bool)
	for _, cat := range categories {
		rs, ok := s.queries.GetCachedResultSet(cat)
		if !ok {
			continue
		}
		for _, m := range rs.Movies {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			items = append(items, Result{Movie: m, Category: cat})
		}
	}

	if len(items) == 0 {
		return nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Movie.Title
	}

	matches := FuzzySearch(query, titles)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = items[m.Index]
		results[i].MatchedIndexes = m.MatchedIndexes
		results[i].Score = m.Score
	}

	s.logger.Debug("search", "query", query, "candidates", len(items), "results", len(results))
	return results
}

package tmdb

import (
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapResultSet converts a listing response to a domain result set
func MapResultSet(resp *ListResponse, category domain.Category, fetchedAt time.Time) *domain.ResultSet {
	rs := &domain.ResultSet{
		Category:     category,
		Movies:       MapMovies(resp.Results),
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		FetchedAt:    fetchedAt,
	}
	if resp.Dates != nil {
		rs.Dates = &domain.DateRange{
			Minimum: resp.Dates.Minimum,
			Maximum: resp.Dates.Maximum,
		}
	}
	return rs
}

// MapMovies converts listing entries, keeping API order
func MapMovies(dtos []MovieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		movies = append(movies, mapMovie(d))
	}
	return movies
}

func mapMovie(d MovieDTO) domain.Movie {
	m := domain.Movie{
		ID:               d.ID,
		Title:            d.Title,
		Overview:         d.Overview,
		BackdropPath:     deref(d.BackdropPath),
		PosterPath:       deref(d.PosterPath),
		ReleaseDate:      d.ReleaseDate,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
		OriginalLanguage: d.OriginalLanguage,
	}
	if m.Title == "" {
		m.Title = d.OriginalTitle
	}
	return m
}

// MapDetails converts a details response to domain details
func MapDetails(d *DetailsDTO) *domain.MovieDetails {
	details := &domain.MovieDetails{
		Movie:    mapMovie(d.MovieDTO),
		Tagline:  d.Tagline,
		Homepage: d.Homepage,
		Status:   d.Status,
	}
	if d.Runtime != nil {
		details.Runtime = *d.Runtime
	}
	for _, g := range d.Genres {
		details.Genres = append(details.Genres, g.Name)
	}
	return details
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

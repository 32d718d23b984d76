package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Movie is a single title returned by a listing call
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	BackdropPath     string  `json:"backdrop_path,omitempty"` // Empty when the API returned null
	PosterPath       string  `json:"poster_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"` // YYYY-MM-DD
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	OriginalLanguage string  `json:"original_language,omitempty"`
}

// IDString returns the movie ID in the form used by routes
func (m Movie) IDString() string {
	return strconv.Itoa(m.ID)
}

// HasBackdrop reports whether the movie has backdrop art
func (m Movie) HasBackdrop() bool {
	return m.BackdropPath != ""
}

// Year returns the release year, or 0 if unknown
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// FormattedRating returns the vote average as "7.4 (1,204)" or "" with no votes
func (m Movie) FormattedRating() string {
	if m.VoteCount == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f (%s)", m.VoteAverage, groupThousands(m.VoteCount))
}

// MovieDetails holds the extra fields only the per-movie endpoint returns
type MovieDetails struct {
	Movie
	Tagline  string   `json:"tagline,omitempty"`
	Runtime  int      `json:"runtime"` // Minutes
	Genres   []string `json:"genres,omitempty"`
	Homepage string   `json:"homepage,omitempty"`
	Status   string   `json:"status,omitempty"`
}

// FormattedRuntime returns the runtime as "2h 14m"
func (d MovieDetails) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	dur := time.Duration(d.Runtime) * time.Minute
	h := int(dur.Hours())
	mins := int(dur.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// GenreList returns genres joined for display
func (d MovieDetails) GenreList() string {
	return strings.Join(d.Genres, ", ")
}

// DateRange is the release window the API reports for now-playing and upcoming
type DateRange struct {
	Minimum string `json:"minimum"`
	Maximum string `json:"maximum"`
}

// ResultSet is the ordered list of movies returned by one listing fetch.
// Order is stable for the lifetime of the value.
type ResultSet struct {
	Category     Category   `json:"category"`
	Movies       []Movie    `json:"movies"`
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Dates        *DateRange `json:"dates,omitempty"`
	FetchedAt    time.Time  `json:"fetched_at"`
}

// Len returns the number of movies; a nil set has none
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Movies)
}

// IsFresh reports whether the set was fetched within ttl of now
func (rs *ResultSet) IsFresh(ttl time.Duration, now time.Time) bool {
	if rs == nil || rs.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(rs.FetchedAt) < ttl
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// Command timeouts
const (
	listingTimeout = 30 * time.Second
	detailsTimeout = 15 * time.Second
)

// Listings is the data source the home page reads from
type Listings interface {
	Fetch(ctx context.Context, category domain.Category) domain.Query
	Refetch(ctx context.Context, category domain.Category) domain.Query
	Peek(category domain.Category) domain.Query
	SetTTL(ttl time.Duration)
}

// DetailsLoader fetches the extra fields shown in the detail panel
type DetailsLoader interface {
	GetDetails(ctx context.Context, id int) (*domain.MovieDetails, error)
}

// Opener hands a URL to the browser
type Opener interface {
	Open(url string) error
}

// Command factories for async operations

// FetchListingCmd loads a listing. refetch skips the caches.
func FetchListingCmd(svc Listings, category domain.Category, refetch bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listingTimeout)
		defer cancel()

		var q domain.Query
		if refetch {
			q = svc.Refetch(ctx, category)
		} else {
			q = svc.Fetch(ctx, category)
		}
		return ListingLoadedMsg{Category: category, Query: q, Refetch: refetch}
	}
}

// LoadDetailsCmd loads details for the detail panel
func LoadDetailsCmd(svc DetailsLoader, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailsTimeout)
		defer cancel()

		details, err := svc.GetDetails(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading details"}
		}
		return DetailsLoadedMsg{ID: id, Details: details}
	}
}

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// CopyLinkCmd copies the movie's web page to the clipboard
func CopyLinkCmd(id int) tea.Cmd {
	return func() tea.Msg {
		url := tmdb.MovieURL(id)
		if err := clipboardWrite(url); err != nil {
			return ErrMsg{Err: err, Context: "copying link"}
		}
		return LinkCopiedMsg{URL: url}
	}
}

// OpenMovieCmd opens the movie's web page in the browser
func OpenMovieCmd(opener Opener, m domain.Movie) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(tmdb.MovieURL(m.ID)); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return OpenedMsg{Title: m.Title}
	}
}

// ClearStatusCmd clears the status message after a delay. seq ties the
// clear to the message it was scheduled for.
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

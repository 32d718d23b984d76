package tui

import (
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListingLoadedMsg carries the data source's answer for a listing
type ListingLoadedMsg struct {
	Category domain.Category
	Query    domain.Query
	Refetch  bool
}

// DetailsLoadedMsg carries details for the detail panel
type DetailsLoadedMsg struct {
	ID      int
	Details *domain.MovieDetails
}

// ConfigReloadedMsg signals the config file changed on disk
type ConfigReloadedMsg struct {
	Config *adapter.Config
	Err    error
}

// LinkCopiedMsg signals a movie link reached the clipboard
type LinkCopiedMsg struct {
	URL string
}

// OpenedMsg signals a movie page was handed to the browser
type OpenedMsg struct {
	Title string
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	Seq int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// Package home holds the home page state: which carousel page is shown,
// whether a page transition is running, and which movie the current route
// selects.
package home

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/router"
)

const (
	// MoviePattern is the route of the detail overlay
	MoviePattern = "/movies/:movieId"
	// MovieParam names the movie id segment of MoviePattern
	MovieParam = "movieId"

	DefaultPageSize = 6
)

// Navigator is the part of the router the controller drives
type Navigator interface {
	Navigate(path string)
	Back() bool
	Match(pattern string) (router.Params, bool)
}

// Transition describes a page change started by Advance
type Transition struct {
	From int
	To   int
}

// Controller owns carousel pagination over the loaded result set.
// Item 0 is the banner and is never paged.
// Not safe for concurrent use; the update loop owns it.
type Controller struct {
	nav      Navigator
	pageSize int

	query     domain.Query
	pageIndex int
	locked    bool // A page transition is running
}

// NewController creates a controller with nothing loaded
func NewController(nav Navigator, pageSize int) *Controller {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		nav:      nav,
		pageSize: pageSize,
		query:    domain.Query{Status: domain.QueryLoading},
	}
}

// SetQuery feeds the latest data source answer. The page index is kept;
// a shrunken set is handled by the bound checks in Advance and
// CurrentSlice.
func (c *Controller) SetQuery(q domain.Query) {
	c.query = q
}

// SetResultSet feeds a successfully loaded result set
func (c *Controller) SetResultSet(rs *domain.ResultSet) {
	c.SetQuery(domain.Query{Key: c.query.Key, Status: domain.QuerySuccess, Data: rs})
}

// SetPageSize changes the number of boxes per page
func (c *Controller) SetPageSize(n int) {
	if n < 1 {
		return
	}
	c.pageSize = n
}

// PageSize returns the number of boxes per page
func (c *Controller) PageSize() int {
	return c.pageSize
}

// Query returns the latest data source answer
func (c *Controller) Query() domain.Query {
	return c.query
}

// Loaded reports whether a result set is available
func (c *Controller) Loaded() bool {
	return c.query.Loaded()
}

// Locked reports whether a page transition is running
func (c *Controller) Locked() bool {
	return c.locked
}

// PageIndex returns the current carousel page
func (c *Controller) PageIndex() int {
	return c.pageIndex
}

// MaxIndex returns the last page index for the current result set:
// floor((len-1)/pageSize) - 1. Negative when there is no full page.
func (c *Controller) MaxIndex() int {
	return maxIndex(c.query.Data.Len(), c.pageSize)
}

func maxIndex(n, pageSize int) int {
	if n < 1 {
		return -1
	}
	return (n-1)/pageSize - 1
}

// PageCount returns how many distinct pages Advance cycles through
func (c *Controller) PageCount() int {
	if m := c.MaxIndex(); m > 0 {
		return m + 1
	}
	return 1
}

// Advance moves to the next page, wrapping to 0 after the last. It is
// dropped, not queued, while a transition runs or before data loads.
// The bound is computed from the result set current at call time.
func (c *Controller) Advance() (Transition, bool) {
	if !c.Loaded() || c.locked {
		return Transition{}, false
	}
	c.locked = true

	from := c.pageIndex
	if from >= c.MaxIndex() {
		c.pageIndex = 0
	} else {
		c.pageIndex = from + 1
	}
	return Transition{From: from, To: c.pageIndex}, true
}

// TransitionSettled releases the lock taken by Advance. Called when the
// outgoing page's exit animation completes.
func (c *Controller) TransitionSettled() {
	c.locked = false
}

// Reset returns to the first page and releases the lock, e.g. when a
// different listing is shown
func (c *Controller) Reset() {
	c.pageIndex = 0
	c.locked = false
}

// CurrentSlice returns the movies on the current page. Never includes
// the banner; empty when nothing is loaded or the page is out of range.
func (c *Controller) CurrentSlice() []domain.Movie {
	return c.Slice(c.pageIndex)
}

// Slice returns the movies on page i
func (c *Controller) Slice(i int) []domain.Movie {
	if !c.Loaded() || i < 0 || c.query.Data.Len() < 2 {
		return nil
	}
	pageable := c.query.Data.Movies[1:]
	start := c.pageSize * i
	if start >= len(pageable) {
		return nil
	}
	end := start + c.pageSize
	if end > len(pageable) {
		end = len(pageable)
	}
	return pageable[start:end]
}

// Banner returns the featured movie, item 0 of the result set
func (c *Controller) Banner() (domain.Movie, bool) {
	if !c.Loaded() || c.query.Data.Len() == 0 {
		return domain.Movie{}, false
	}
	return c.query.Data.Movies[0], true
}

// SelectItem opens the detail route for id
func (c *Controller) SelectItem(id int) {
	c.nav.Navigate(MoviePath(id))
}

// DismissOverlay goes back one route entry
func (c *Controller) DismissOverlay() bool {
	return c.nav.Back()
}

// SelectedID returns the movie id segment of the current route, if the
// route is a movie route
func (c *Controller) SelectedID() (string, bool) {
	params, ok := c.nav.Match(MoviePattern)
	if !ok {
		return "", false
	}
	id := params.Get(MovieParam)
	return id, id != ""
}

// SelectedItem returns the loaded movie the current route points at.
// No route parameter or no matching movie yields false.
func (c *Controller) SelectedItem() (domain.Movie, bool) {
	id, ok := c.SelectedID()
	if !ok || !c.Loaded() {
		return domain.Movie{}, false
	}
	for _, m := range c.query.Data.Movies {
		if m.IDString() == id {
			return m, true
		}
	}
	return domain.Movie{}, false
}

// MoviePath returns the detail route for id
func MoviePath(id int) string {
	return fmt.Sprintf("/movies/%d", id)
}

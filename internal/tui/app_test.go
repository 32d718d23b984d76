package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/motion"
	"github.com/mmcdole/marquee/internal/search"
)

var testNow = time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)

// fakeListings serves canned result sets and remembers what was fetched
type fakeListings struct {
	sets    map[domain.Category]*domain.ResultSet
	errs    map[domain.Category]error
	cached  map[domain.Category]*domain.ResultSet
	fetches []domain.Category
	ttl     time.Duration
}

func newFakeListings() *fakeListings {
	return &fakeListings{
		sets:   make(map[domain.Category]*domain.ResultSet),
		errs:   make(map[domain.Category]error),
		cached: make(map[domain.Category]*domain.ResultSet),
	}
}

func (f *fakeListings) Fetch(ctx context.Context, category domain.Category) domain.Query {
	f.fetches = append(f.fetches, category)
	if err := f.errs[category]; err != nil {
		return domain.Query{Key: category.CacheKey(), Status: domain.QueryError, Err: err}
	}
	rs := f.sets[category]
	f.cached[category] = rs
	return domain.Query{Key: category.CacheKey(), Status: domain.QuerySuccess, Data: rs}
}

func (f *fakeListings) Refetch(ctx context.Context, category domain.Category) domain.Query {
	return f.Fetch(ctx, category)
}

func (f *fakeListings) Peek(category domain.Category) domain.Query {
	rs, ok := f.cached[category]
	if !ok {
		return domain.Query{Key: category.CacheKey(), Status: domain.QueryLoading}
	}
	return domain.Query{Key: category.CacheKey(), Status: domain.QuerySuccess, Data: rs}
}

func (f *fakeListings) SetTTL(ttl time.Duration) { f.ttl = ttl }

func (f *fakeListings) GetCachedResultSet(category domain.Category) (*domain.ResultSet, bool) {
	rs, ok := f.cached[category]
	return rs, ok
}

func (f *fakeListings) GetCachedDetails(id int) (*domain.MovieDetails, bool) {
	return nil, false
}

type fakeDetails struct{}

func (fakeDetails) GetDetails(ctx context.Context, id int) (*domain.MovieDetails, error) {
	return &domain.MovieDetails{Movie: domain.Movie{ID: id}, Runtime: 120}, nil
}

type fakeOpener struct{ urls []string }

func (o *fakeOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

// resultSet builds n movies with ids starting at first
func resultSet(cat domain.Category, first, n int) *domain.ResultSet {
	rs := &domain.ResultSet{Category: cat, Page: 1}
	for i := 0; i < n; i++ {
		id := first + i
		rs.Movies = append(rs.Movies, domain.Movie{
			ID:       id,
			Title:    fmt.Sprintf("Movie %d", id),
			Overview: "Overview of movie",
		})
	}
	return rs
}

type testApp struct {
	m      Model
	fl     *fakeListings
	opener *fakeOpener
	clock  *time.Time
}

func newTestApp(t *testing.T, fl *fakeListings, width, height int) *testApp {
	t.Helper()
	clock := testNow
	opener := &fakeOpener{}
	sizer := motion.NewTerminalSizer()

	m := NewModel(Options{
		Listings: fl,
		Details:  fakeDetails{},
		Search:   search.NewService(fl, adapter.NullLogger()),
		Opener:   opener,
		Config:   adapter.DefaultConfig(),
		Sizer:    sizer,
		Logger:   adapter.NullLogger(),
		Now:      func() time.Time { return clock },
	})
	app := &testApp{m: m, fl: fl, opener: opener, clock: &clock}
	app.send(tea.WindowSizeMsg{Width: width, Height: height})
	return app
}

func (a *testApp) send(msg tea.Msg) tea.Cmd {
	next, cmd := a.m.Update(msg)
	a.m = next.(Model)
	return cmd
}

func (a *testApp) key(s string) tea.Cmd {
	switch s {
	case "enter":
		return a.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return a.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "right":
		return a.send(tea.KeyMsg{Type: tea.KeyRight})
	case "left":
		return a.send(tea.KeyMsg{Type: tea.KeyLeft})
	case "down":
		return a.send(tea.KeyMsg{Type: tea.KeyDown})
	}
	return a.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// load delivers the listing for the category on show
func (a *testApp) load() {
	cat := a.m.Category()
	a.send(ListingLoadedMsg{Category: cat, Query: a.fl.Fetch(context.Background(), cat)})
}

// advanceClock moves the clock and delivers a frame
func (a *testApp) advanceClock(d time.Duration) {
	*a.clock = a.clock.Add(d)
	a.send(motion.FrameMsg(*a.clock))
}

func TestView_PlaceholderWhileLoading(t *testing.T) {
	app := newTestApp(t, newFakeListings(), 100, 40)

	view := app.m.View()
	if !strings.Contains(view, "Loading Now Playing") {
		t.Errorf("view should show the loading placeholder, got:\n%s", view)
	}
	if app.m.Controller().Loaded() {
		t.Error("controller should not be loaded yet")
	}
}

func TestView_ShowsBannerAndCategory(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	view := app.m.View()
	if !strings.Contains(view, "MOVIE 1") {
		t.Errorf("banner should feature item 0, got:\n%s", view)
	}
	if !strings.Contains(view, "page 1/2") {
		t.Errorf("status bar should show the page count, got:\n%s", view)
	}
}

func TestAdvance_LocksUntilExitCompletes(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	if cmd := app.key("n"); cmd == nil {
		t.Fatal("advance should start the frame loop")
	}
	c := app.m.Controller()
	if c.PageIndex() != 1 || !c.Locked() {
		t.Fatalf("after advance: page %d locked %v, want 1 true", c.PageIndex(), c.Locked())
	}

	// Dropped while the slide runs
	app.key("n")
	if c.PageIndex() != 1 {
		t.Errorf("advance during transition moved to page %d", c.PageIndex())
	}

	app.advanceClock(2 * time.Second)
	if c.Locked() {
		t.Error("lock should be released once the exit completes")
	}
	if app.m.slide != nil {
		t.Error("slide should be dropped once both rows settle")
	}

	app.key("n")
	if c.PageIndex() != 0 {
		t.Errorf("advance past the last page = %d, want wrap to 0", c.PageIndex())
	}
}

func TestAdvance_SinglePageSettlesImmediately(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 5)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	app.key("n")
	c := app.m.Controller()
	if c.PageIndex() != 0 || c.Locked() {
		t.Errorf("single page: page %d locked %v, want 0 false", c.PageIndex(), c.Locked())
	}
	if app.m.slide != nil {
		t.Error("single page should not slide")
	}
}

func TestEnter_OpensAndClosesDetail(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	app.key("right")
	if cmd := app.key("enter"); cmd == nil {
		t.Fatal("selecting a box should load details")
	}
	if got := app.m.router.Location(); got != "/movies/2" {
		t.Errorf("route = %q, want /movies/2", got)
	}
	if !app.m.OverlayVisible() {
		t.Fatal("detail panel should be visible")
	}

	app.send(DetailsLoadedMsg{ID: 2, Details: &domain.MovieDetails{Movie: domain.Movie{ID: 2}, Runtime: 95}})
	if !app.m.detail.HasDetails() {
		t.Error("details for the open movie should be kept")
	}

	app.key("esc")
	if app.m.OverlayVisible() {
		t.Error("esc should close the panel")
	}
	if got := app.m.router.Location(); got != "/" {
		t.Errorf("route after close = %q, want /", got)
	}

	app.advanceClock(time.Second)
	if app.m.overlayShown {
		t.Error("panel should be gone once the fade out finishes")
	}
}

func TestEnter_OnBannerAdvances(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	app.key("enter")
	if app.m.Controller().PageIndex() != 1 {
		t.Errorf("enter on the banner should advance, page = %d", app.m.Controller().PageIndex())
	}
	if app.m.OverlayVisible() {
		t.Error("enter on the banner should not open the panel")
	}
}

func TestOverlay_OpensAtScrollPosition(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 12)
	app.load()

	for i := 0; i < 3; i++ {
		app.key("down")
	}
	if got := app.m.ScrollOffset(); got != 3 {
		t.Fatalf("scroll = %d, want 3", got)
	}

	app.key("right")
	app.key("enter")
	if got, want := app.m.overlayTop, 3+OverlayMargin; got != want {
		t.Errorf("overlay top = %d, want %d", got, want)
	}
}

func TestScroll_ClampsToPage(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	app.key("down")
	if got := app.m.ScrollOffset(); got != 0 {
		t.Errorf("page fits the screen, scroll = %d, want 0", got)
	}
}

func TestListingError_SetsStatus(t *testing.T) {
	fl := newFakeListings()
	fl.errs[domain.CategoryNowPlaying] = errors.New("connection refused")
	app := newTestApp(t, fl, 100, 40)
	app.load()

	if !app.m.StatusIsErr {
		t.Error("status should be an error")
	}
	if !strings.Contains(app.m.StatusMsg, "connection refused") {
		t.Errorf("status = %q, want the fetch error", app.m.StatusMsg)
	}
	if view := app.m.View(); !strings.Contains(view, "Could not load Now Playing") {
		t.Errorf("view should show the error placeholder, got:\n%s", view)
	}
}

func TestClearStatus_IgnoresOlderMessages(t *testing.T) {
	app := newTestApp(t, newFakeListings(), 100, 40)

	app.send(StatusMsg{Message: "first"})
	first := app.m.statusSeq
	app.send(StatusMsg{Message: "second"})

	app.send(ClearStatusMsg{Seq: first})
	if app.m.StatusMsg != "second" {
		t.Errorf("stale clear removed %q", app.m.StatusMsg)
	}
	app.send(ClearStatusMsg{Seq: app.m.statusSeq})
	if app.m.StatusMsg != "" {
		t.Errorf("status = %q, want cleared", app.m.StatusMsg)
	}
}

func TestCategory_CyclesAndFetches(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()
	app.key("n")

	if cmd := app.key("c"); cmd == nil {
		t.Fatal("switching category should fetch")
	}
	if got := app.m.Category(); got != domain.CategoryPopular {
		t.Errorf("category = %s, want popular", got)
	}
	c := app.m.Controller()
	if c.PageIndex() != 0 || c.Locked() || c.Loaded() {
		t.Errorf("new listing: page %d locked %v loaded %v", c.PageIndex(), c.Locked(), c.Loaded())
	}

	// A late answer for the old listing is ignored
	app.send(ListingLoadedMsg{Category: domain.CategoryNowPlaying, Query: fl.Peek(domain.CategoryNowPlaying)})
	if c.Loaded() {
		t.Error("answer for another listing should not load the home page")
	}
}

func TestSearch_SelectsAcrossCategories(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	fl.sets[domain.CategoryPopular] = &domain.ResultSet{
		Category: domain.CategoryPopular,
		Movies: []domain.Movie{
			{ID: 500, Title: "Zorro Returns"},
			{ID: 501, Title: "Another Film"},
		},
	}
	app := newTestApp(t, fl, 100, 40)
	app.load()

	app.key("/")
	if app.m.State != StateSearching {
		t.Fatal("search should open")
	}
	// The search fetch for the other listing arrives
	app.send(ListingLoadedMsg{
		Category: domain.CategoryPopular,
		Query:    fl.Fetch(context.Background(), domain.CategoryPopular),
	})

	app.key("zorro")
	if app.m.searchBox.ResultCount() == 0 {
		t.Fatal("query should match the cached listing")
	}

	app.key("enter")
	if app.m.State != StateBrowsing {
		t.Error("selection should close search")
	}
	if got := app.m.Category(); got != domain.CategoryPopular {
		t.Errorf("category = %s, want popular", got)
	}
	if got := app.m.router.Location(); got != "/movies/500" {
		t.Errorf("route = %q, want /movies/500", got)
	}
	if !app.m.OverlayVisible() {
		t.Error("selected movie should open in the panel")
	}
}

func TestCopyLink(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	cmd := app.key("y")
	if cmd == nil {
		t.Fatal("copy should return a command")
	}
	msg := cmd()
	if copied != tmdb.MovieURL(1) {
		t.Errorf("copied %q, want the banner movie link", copied)
	}
	app.send(msg)
	if !strings.HasPrefix(app.m.StatusMsg, "Copied") {
		t.Errorf("status = %q", app.m.StatusMsg)
	}
}

func TestOpen_UsesOpener(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	app.key("right")
	cmd := app.key("o")
	if cmd == nil {
		t.Fatal("open should return a command")
	}
	if _, ok := cmd().(OpenedMsg); !ok {
		t.Fatal("open should report success")
	}
	if len(app.opener.urls) != 1 || app.opener.urls[0] != tmdb.MovieURL(2) {
		t.Errorf("opened %v", app.opener.urls)
	}
}

func TestConfigReload_PageSize(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()
	app.key("n")

	cfg := adapter.DefaultConfig()
	cfg.Home.PageSize = 4
	cfg.Cache.TTL = time.Hour
	app.send(ConfigReloadedMsg{Config: cfg})

	c := app.m.Controller()
	if c.PageSize() != 4 || c.PageIndex() != 0 || c.Locked() {
		t.Errorf("after reload: size %d page %d locked %v", c.PageSize(), c.PageIndex(), c.Locked())
	}
	if app.m.carousel.PageSize() != 4 {
		t.Errorf("carousel page size = %d, want 4", app.m.carousel.PageSize())
	}
	if fl.ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", fl.ttl)
	}
}

func TestConfigReload_ErrorKeepsSettings(t *testing.T) {
	app := newTestApp(t, newFakeListings(), 100, 40)

	app.send(ConfigReloadedMsg{Err: errors.New("page_size must be positive")})
	if !app.m.StatusIsErr {
		t.Error("rejected reload should report an error")
	}
	if app.m.Controller().PageSize() != 6 {
		t.Errorf("page size = %d, want unchanged 6", app.m.Controller().PageSize())
	}
}

func TestHelp_Toggles(t *testing.T) {
	app := newTestApp(t, newFakeListings(), 100, 40)

	app.key("?")
	if app.m.State != StateHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(app.m.View(), "Keys") {
		t.Error("help view should list keys")
	}
	app.key("?")
	if app.m.State != StateBrowsing {
		t.Error("? should close help")
	}
}

func TestEmptyListing_RendersPlaceholder(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = &domain.ResultSet{Category: domain.CategoryNowPlaying, Page: 1}
	app := newTestApp(t, fl, 100, 40)
	app.load()

	if !app.m.Controller().Loaded() {
		t.Fatal("an empty listing is still a successful load")
	}
	if view := app.m.View(); !strings.Contains(view, "No movies in Now Playing") {
		t.Errorf("view should say the listing is empty, got:\n%s", view)
	}

	for _, k := range []string{"n", "right", "enter", "left", "enter", "down", "y", "o"} {
		app.key(k)
	}
	if app.m.OverlayVisible() {
		t.Error("nothing to select in an empty listing")
	}
	if got := app.m.Controller().PageIndex(); got != 0 {
		t.Errorf("page = %d, want 0", got)
	}
	app.m.View()
}

func TestOverlay_RouteWithoutMovieShowsPlaceholder(t *testing.T) {
	fl := newFakeListings()
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 1, 13)
	app := newTestApp(t, fl, 100, 40)
	app.load()

	app.key("right")
	app.key("enter")

	// A refetch drops the open movie
	fl.sets[domain.CategoryNowPlaying] = resultSet(domain.CategoryNowPlaying, 100, 13)
	app.send(ListingLoadedMsg{
		Category: domain.CategoryNowPlaying,
		Query:    fl.Refetch(context.Background(), domain.CategoryNowPlaying),
		Refetch:  true,
	})

	if got := app.m.router.Location(); got != "/movies/2" {
		t.Fatalf("route = %q, want /movies/2", got)
	}
	if !app.m.OverlayVisible() {
		t.Fatal("a movie route should keep a panel on screen")
	}
	if id, ok := app.m.detail.Missing(); !ok || id != "2" {
		t.Errorf("placeholder for %q, %v; want 2", id, ok)
	}

	app.advanceClock(time.Second)
	if view := app.m.View(); !strings.Contains(view, "Not in Now Playing") {
		t.Errorf("panel should explain the missing movie, got:\n%s", view)
	}
	if cmd := app.key("y"); cmd != nil {
		t.Error("nothing to copy for a missing movie")
	}

	app.key("esc")
	if app.m.OverlayVisible() {
		t.Error("esc should close the placeholder")
	}
	if got := app.m.router.Location(); got != "/" {
		t.Errorf("route after close = %q, want /", got)
	}
}

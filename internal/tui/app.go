package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/home"
	"github.com/mmcdole/marquee/internal/motion"
	"github.com/mmcdole/marquee/internal/router"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateHelp
)

// Layout constants
const (
	ChromeHeight     = 1 // Status bar
	MarginX          = 2 // Left/right margin of the carousel
	OverlayMargin    = 2 // Rows between the scroll position and the detail panel
	MinBannerHeight  = 7
	MaxBannerHeight  = 16
	statusDuration   = 3 * time.Second
	overlayFade      = 200 * time.Millisecond
	bannerFocus      = components.NoFocus
	minOverlayAlpha  = 0.2 // Panel is drawn once the fade passes this
	backdropMinAlpha = 0.05
)

// Zone IDs for mouse hit testing
const (
	zoneBanner   = "home-banner"
	zoneCarousel = "home-carousel"
	zoneDetail   = "detail-panel"
)

// Options wires a Model to its services
type Options struct {
	Listings Listings
	Details  DetailsLoader
	Search   *search.Service
	Opener   Opener
	Config   *adapter.Config
	Category domain.Category
	Sizer    *motion.TerminalSizer
	Zones    *zone.Manager // nil disables mouse hit testing
	Logger   *slog.Logger
	Now      func() time.Time
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Listings  Listings
	DetailSvc DetailsLoader
	SearchSvc *search.Service
	Opener    Opener
	logger    *slog.Logger

	// Home page
	controller *home.Controller
	router     *router.Router
	category   domain.Category
	imageBase  string
	mouse      bool

	// UI Components
	carousel  components.Carousel
	detail    components.Detail
	searchBox components.Search
	spinner   spinner.Model
	dots      paginator.Model
	help      help.Model

	// Motion
	sizer           *motion.TerminalSizer
	zones           *zone.Manager
	now             func() time.Time
	slideDuration   time.Duration
	overlayVariants motion.Variants
	slide           *motion.Slide
	overlayAnim     *motion.Animator
	overlayShown    bool // Panel is drawn, including while it fades out
	overlayClosing  bool
	overlayTop      int // Page row of the panel, fixed when it opens
	animating       bool
	spinning        bool

	focus  int // Focused carousel slot; bannerFocus for the banner
	scroll int // Page scroll offset in rows

	// Dimensions
	Width  int
	Height int

	// Status bar
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
	fetching    bool
	pending     map[domain.Category]bool // Listings fetched for search
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = adapter.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sizer := opts.Sizer
	if sizer == nil {
		sizer = motion.NewTerminalSizer()
	}
	category := opts.Category
	if category == "" {
		category = cfg.HomeCategory()
	}

	if !styles.Apply(cfg.UI.Theme) {
		logger.Warn("unknown theme, keeping default", "theme", cfg.UI.Theme)
	}

	r := router.New()
	controller := home.NewController(r, cfg.Home.PageSize)

	dots := paginator.New()
	dots.Type = paginator.Dots

	m := Model{
		State:           StateBrowsing,
		Listings:        opts.Listings,
		DetailSvc:       opts.Details,
		SearchSvc:       opts.Search,
		Opener:          opts.Opener,
		logger:          logger,
		controller:      controller,
		router:          r,
		category:        category,
		imageBase:       cfg.API.ImageBaseURL,
		mouse:           cfg.UI.Mouse,
		carousel:        components.NewCarousel(controller.PageSize(), boxVariants(cfg), infoVariants(cfg)),
		detail:          components.NewDetail(cfg.API.ImageBaseURL),
		searchBox:       components.NewSearch(),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		dots:            dots,
		help:            help.New(),
		sizer:           sizer,
		zones:           opts.Zones,
		now:             now,
		slideDuration:   cfg.Home.SlideDuration,
		overlayVariants: motion.OverlayVariants(overlayFade),
		focus:           bannerFocus,
		fetching:        true, // Init fetches the start listing
		spinning:        true,
		pending:         make(map[domain.Category]bool),
	}

	// Show whatever is cached straight away; Init revalidates it
	if q := m.Listings.Peek(category); q.Loaded() {
		controller.SetQuery(q)
	}
	return m
}

func boxVariants(cfg *adapter.Config) motion.Variants {
	return motion.BoxVariants(cfg.Home.HoverDelay, cfg.Home.HoverDuration)
}

func infoVariants(cfg *adapter.Config) motion.Variants {
	return motion.InfoVariants(cfg.Home.HoverDelay, cfg.Home.HoverDuration)
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		FetchListingCmd(m.Listings, m.category, false),
		m.spinner.Tick,
	)
}

// Controller exposes the home page state
func (m Model) Controller() *home.Controller {
	return m.controller
}

// Category returns the listing on show
func (m Model) Category() domain.Category {
	return m.category
}

// ScrollOffset returns how many page rows are scrolled out above the screen
func (m Model) ScrollOffset() int {
	return m.scroll
}

// OverlayVisible reports whether the detail panel is open
func (m Model) OverlayVisible() bool {
	return m.overlayShown && !m.overlayClosing
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.sizer.Update(msg.Width, msg.Height)
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		if !m.isLoading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.spinning = true
		return m, cmd

	case motion.FrameMsg:
		cmd := m.onFrame(time.Time(msg))
		return m, cmd

	case ListingLoadedMsg:
		cmd := m.onListingLoaded(msg)
		return m, cmd

	case DetailsLoadedMsg:
		m.detail.SetDetails(msg.Details)
		return m, nil

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		if msg.Context == "loading details" {
			m.detail.SetLoading(false)
		}
		cmd := m.setStatus(msg.Error(), true)
		return m, cmd

	case LinkCopiedMsg:
		cmd := m.setStatus("Copied "+msg.URL, false)
		return m, cmd

	case OpenedMsg:
		cmd := m.setStatus("Opened "+msg.Title+" in browser", false)
		return m, cmd

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.logger.Warn("config reload rejected", "error", msg.Err)
			cmd := m.setStatus("Config not reloaded: "+msg.Err.Error(), true)
			return m, cmd
		}
		cmd := m.applyConfig(msg.Config)
		return m, cmd
	}

	// Cursor blink and other input traffic
	if m.State == StateSearching {
		var cmd tea.Cmd
		m.searchBox, cmd, _ = m.searchBox.Update(msg)
		return m, cmd
	}
	return m, nil
}

// onListingLoaded feeds a data source answer to the home page and search
func (m *Model) onListingLoaded(msg ListingLoadedMsg) tea.Cmd {
	var cmds []tea.Cmd

	if m.pending[msg.Category] {
		delete(m.pending, msg.Category)
		m.searchBox.SetPending(len(m.pending))
		if m.State == StateSearching {
			m.refreshSearch()
		}
	}
	if msg.Category != m.category {
		return nil
	}

	m.fetching = false
	q := msg.Query
	switch {
	case q.Status == domain.QueryError:
		m.logger.Error("listing failed", "category", msg.Category, "error", q.Err)
		m.controller.SetQuery(q)
		cmds = append(cmds, m.setStatus(fmt.Sprintf("%s: %v", msg.Category, q.Err), true))

	case q.Stale:
		m.logger.Warn("serving stale listing", "category", msg.Category, "error", q.Err)
		m.controller.SetQuery(q)
		cmds = append(cmds, m.setStatus("Offline, showing cached "+msg.Category.String(), true))

	default:
		m.controller.SetQuery(q)
		if msg.Refetch {
			cmds = append(cmds, m.setStatus("Refreshed "+msg.Category.String(), false))
		}
	}

	m.clampFocus()
	m.clampScroll()
	cmds = append(cmds, m.syncOverlay())
	return tea.Batch(cmds...)
}

// onFrame advances every running animation to now
func (m *Model) onFrame(now time.Time) tea.Cmd {
	if m.slide != nil {
		if m.slide.ExitComplete(now) {
			m.controller.TransitionSettled()
		}
		if m.slide.Done(now) {
			m.slide = nil
		}
	}
	if m.overlayClosing && m.overlayAnim.Done(now) {
		m.overlayShown = false
		m.overlayClosing = false
		m.overlayAnim = nil
	}

	overlayMoving := m.overlayAnim != nil && !m.overlayAnim.Done(now)
	if m.slide != nil || overlayMoving || m.carousel.Animating(now) {
		return motion.TickCmd()
	}
	m.animating = false
	return nil
}

// startFrames starts the frame loop unless it is already running
func (m *Model) startFrames() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return motion.TickCmd()
}

// startSpinner restarts the spinner tick if it stopped
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m Model) isLoading() bool {
	return m.fetching || !m.controller.Loaded()
}

// setStatus shows a status message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, statusDuration)
}

// advance starts the next page transition
func (m *Model) advance() tea.Cmd {
	t, ok := m.controller.Advance()
	if !ok {
		return nil
	}
	if t.From == t.To {
		// A single page has nothing to slide out
		m.controller.TransitionSettled()
		return nil
	}
	rows := motion.RowVariants(m.sizer, m.slideDuration)
	m.slide = motion.NewSlide(rows, t.From, t.To, m.now())
	m.clampFocus()
	return m.startFrames()
}

// moveFocus shifts focus between the banner and the boxes
func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.controller.CurrentSlice())
	next := m.focus + delta
	if next < bannerFocus {
		next = bannerFocus
	}
	if next > n-1 {
		next = n - 1
	}
	return m.setFocus(next)
}

func (m *Model) setFocus(slot int) tea.Cmd {
	if slot == m.focus {
		return nil
	}
	m.focus = slot
	m.carousel.Focus(slot, m.now())
	return m.startFrames()
}

// clampFocus keeps focus on an existing box after the page changed
func (m *Model) clampFocus() {
	if n := len(m.controller.CurrentSlice()); m.focus > n-1 {
		m.focus = n - 1
		m.carousel.Focus(m.focus, m.now())
	}
}

// focusedMovie returns the movie under focus: the banner or a box
func (m Model) focusedMovie() (domain.Movie, bool) {
	if m.focus == bannerFocus {
		return m.controller.Banner()
	}
	slice := m.controller.CurrentSlice()
	if m.focus < len(slice) {
		return slice[m.focus], true
	}
	return domain.Movie{}, false
}

// actionMovie is the movie copy/open act on: the panel's when open
func (m Model) actionMovie() (domain.Movie, bool) {
	if m.OverlayVisible() {
		_, missing := m.detail.Missing()
		return m.detail.Movie(), !missing
	}
	return m.focusedMovie()
}

// selectMovie navigates to the detail route for id
func (m *Model) selectMovie(id int) tea.Cmd {
	m.controller.SelectItem(id)
	return m.syncOverlay()
}

// dismiss leaves the detail route
func (m *Model) dismiss() tea.Cmd {
	if !m.controller.DismissOverlay() {
		return nil
	}
	return m.syncOverlay()
}

// syncOverlay opens or closes the detail panel to match the route. A
// movie route the listing cannot resolve gets a placeholder panel.
func (m *Model) syncOverlay() tea.Cmd {
	now := m.now()
	if movie, ok := m.controller.SelectedItem(); ok {
		if _, missing := m.detail.Missing(); m.OverlayVisible() && !missing && m.detail.Movie().ID == movie.ID {
			return nil
		}
		m.detail.SetMovie(movie)
		cmds := []tea.Cmd{m.openOverlay(now)}
		if !m.detail.HasDetails() && m.DetailSvc != nil {
			m.detail.SetLoading(true)
			cmds = append(cmds, LoadDetailsCmd(m.DetailSvc, movie.ID))
		}
		return tea.Batch(cmds...)
	}

	if id, ok := m.controller.SelectedID(); ok {
		note := "Not in " + m.category.String() + ". Press esc to go back."
		if !m.controller.Loaded() {
			note = "Loading " + m.category.String() + "..."
		}
		shown, missing := m.detail.Missing()
		wasOpen := m.OverlayVisible() && missing && shown == id
		m.detail.SetMissing(id, note)
		if wasOpen {
			return nil
		}
		return m.openOverlay(now)
	}

	if m.OverlayVisible() {
		m.overlayClosing = true
		m.overlayAnim.Retarget(m.overlayVariants.MustGet(motion.StateExit), now)
		return m.startFrames()
	}
	return nil
}

// openOverlay fades the detail panel in at the current scroll position
func (m *Model) openOverlay(now time.Time) tea.Cmd {
	m.overlayShown = true
	m.overlayClosing = false
	m.overlayTop = m.ScrollOffset() + OverlayMargin
	m.overlayAnim = motion.NewAnimator(
		m.overlayVariants.MustGet(motion.StateHidden).Target,
		m.overlayVariants.MustGet(motion.StateVisible),
		now)
	m.detail.SetSize(m.Width, m.Height-ChromeHeight)
	return m.startFrames()
}

// showCategory switches the home page to another listing
func (m *Model) showCategory(cat domain.Category) tea.Cmd {
	m.category = cat
	m.controller.Reset()
	m.slide = nil
	m.scroll = 0
	m.focus = bannerFocus
	m.carousel.Focus(bannerFocus, m.now())

	q := m.Listings.Peek(cat)
	if !q.Loaded() {
		q = domain.Query{Key: cat.CacheKey(), Status: domain.QueryLoading}
	}
	m.controller.SetQuery(q)
	m.fetching = true

	return tea.Batch(
		FetchListingCmd(m.Listings, cat, false),
		m.startSpinner(),
		m.syncOverlay(),
	)
}

// refresh refetches the listing on show, bypassing caches
func (m *Model) refresh() tea.Cmd {
	m.fetching = true
	return tea.Batch(
		FetchListingCmd(m.Listings, m.category, true),
		m.startSpinner(),
		m.setStatus("Refreshing "+m.category.String()+"...", false),
	)
}

// openSearch shows the search modal and loads listings not yet cached
func (m *Model) openSearch() tea.Cmd {
	m.State = StateSearching
	m.searchBox.Show()
	m.searchBox.SetSize(m.Width, m.Height-ChromeHeight)

	cmds := []tea.Cmd{m.searchBox.Init()}
	for _, cat := range domain.Categories() {
		if m.pending[cat] || m.Listings.Peek(cat).Loaded() {
			continue
		}
		m.pending[cat] = true
		cmds = append(cmds, FetchListingCmd(m.Listings, cat, false))
	}
	m.searchBox.SetPending(len(m.pending))
	return tea.Batch(cmds...)
}

// refreshSearch reruns the query against the cached listings
func (m *Model) refreshSearch() {
	if m.SearchSvc == nil {
		return
	}
	m.searchBox.SetResults(m.SearchSvc.FilterLocal(m.searchBox.Query(), m.searchOrder()))
}

// searchOrder lists the listing on show first
func (m Model) searchOrder() []domain.Category {
	order := []domain.Category{m.category}
	for _, c := range domain.Categories() {
		if c != m.category {
			order = append(order, c)
		}
	}
	return order
}

// openResult shows a search hit, switching listing if it lives elsewhere
func (m *Model) openResult(r search.Result) tea.Cmd {
	var cmds []tea.Cmd
	if r.Category != m.category {
		cmds = append(cmds, m.showCategory(r.Category))
	}
	cmds = append(cmds, m.selectMovie(r.Movie.ID))
	return tea.Batch(cmds...)
}

// applyConfig takes over settings that can change while running
func (m *Model) applyConfig(cfg *adapter.Config) tea.Cmd {
	var cmds []tea.Cmd

	if !styles.Apply(cfg.UI.Theme) {
		m.logger.Warn("unknown theme, keeping current", "theme", cfg.UI.Theme)
	}
	m.spinner.Style = styles.SpinnerStyle

	m.Listings.SetTTL(cfg.Cache.TTL)
	m.slideDuration = cfg.Home.SlideDuration
	m.carousel.SetVariants(boxVariants(cfg), infoVariants(cfg))
	m.imageBase = cfg.API.ImageBaseURL
	m.detail.SetImageBase(cfg.API.ImageBaseURL)

	if cfg.Home.PageSize != m.controller.PageSize() {
		m.controller.SetPageSize(cfg.Home.PageSize)
		m.controller.Reset()
		m.slide = nil
		m.carousel.SetPageSize(cfg.Home.PageSize)
		m.focus = bannerFocus
		m.carousel.Focus(bannerFocus, m.now())
		m.updateLayout()
	}

	if cfg.UI.Mouse != m.mouse {
		m.mouse = cfg.UI.Mouse
		if m.mouse {
			cmds = append(cmds, tea.EnableMouseAllMotion)
		} else {
			cmds = append(cmds, tea.DisableMouse)
		}
	}

	m.logger.Info("config reloaded", "theme", styles.CurrentTheme, "page_size", m.controller.PageSize())
	cmds = append(cmds, m.setStatus("Config reloaded", false))
	return tea.Batch(cmds...)
}

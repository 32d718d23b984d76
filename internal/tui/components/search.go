package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const maxSearchResults = 10

// Search is the fuzzy title search modal
type Search struct {
	input     textinput.Model
	results   []search.Result
	cursor    int
	visible   bool
	width     int
	height    int
	pending   int // Listings still loading into the index
	prevQuery string
}

// NewSearch creates a new search component
func NewSearch() Search {
	ti := textinput.New()
	ti.Placeholder = "Search titles..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Search{input: ti}
}

// Show makes the search visible and focuses the input
func (s *Search) Show() {
	s.visible = true
	s.input.Focus()
	s.input.SetValue("")
	s.input.PromptStyle = styles.AccentStyle
	s.results = nil
	s.cursor = 0
	s.prevQuery = ""
}

// Hide hides the search
func (s *Search) Hide() {
	s.visible = false
	s.input.Blur()
}

// IsVisible returns true if the search is visible
func (s Search) IsVisible() bool {
	return s.visible
}

// SetResults sets the search results with match highlighting data
func (s *Search) SetResults(results []search.Result) {
	s.results = results
	if s.cursor >= len(results) {
		s.cursor = 0
	}
}

// SetPending records how many listings are still being fetched
func (s *Search) SetPending(n int) {
	s.pending = n
}

// SetSize updates the component dimensions
func (s *Search) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = width - 10
}

// Query returns the current search query
func (s Search) Query() string {
	return s.input.Value()
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (s *Search) QueryChanged() bool {
	current := s.input.Value()
	if current != s.prevQuery {
		s.prevQuery = current
		return true
	}
	return false
}

// Selected returns the highlighted result
func (s Search) Selected() (search.Result, bool) {
	if len(s.results) == 0 || s.cursor >= len(s.results) {
		return search.Result{}, false
	}
	return s.results[s.cursor], true
}

// ResultCount returns the number of results
func (s Search) ResultCount() int {
	return len(s.results)
}

// Init initializes the component
func (s Search) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. The bool result reports a selection.
func (s Search) Update(msg tea.Msg) (Search, tea.Cmd, bool) {
	if !s.visible {
		return s, nil, false
	}

	var cmd tea.Cmd
	count := min(s.ResultCount(), maxSearchResults)

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchKeys.Escape):
			s.Hide()
			return s, nil, false

		case key.Matches(msg, SearchKeys.Enter):
			return s, nil, count > 0

		case key.Matches(msg, SearchKeys.Down):
			if s.cursor < count-1 {
				s.cursor++
			}
			return s, nil, false

		case key.Matches(msg, SearchKeys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil, false
		}
	}

	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

// View renders the component
func (s Search) View() string {
	if !s.visible {
		return ""
	}

	modalWidth := s.width * 2 / 3
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 80 {
		modalWidth = 80
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	s.renderResults(&b, modalWidth)
	if s.pending > 0 {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Loading %d more listings...", s.pending)))
	}

	content := lipgloss.NewStyle().
		Width(modalWidth - 6).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		s.width,
		s.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

// renderResults renders the result list
func (s Search) renderResults(b *strings.Builder, modalWidth int) {
	if len(s.results) == 0 {
		if s.input.Value() != "" {
			b.WriteString(styles.DimStyle.Render("No matches found"))
		}
		return
	}

	shown := min(len(s.results), maxSearchResults)
	for i := 0; i < shown; i++ {
		r := s.results[i]
		selected := i == s.cursor

		title := r.Movie.Title
		if y := r.Movie.Year(); y > 0 {
			// Matched indexes still apply to the title portion
			title = fmt.Sprintf("%s (%d)", title, y)
		}
		title = styles.Truncate(title, modalWidth-24)

		b.WriteString(styles.DimBadgeStyle.Render(categoryBadge(r.Category)))
		b.WriteString(" ")
		b.WriteString(HighlightMatches(title, r.MatchedIndexes, selected))
		b.WriteString("\n")
	}

	if len(s.results) > maxSearchResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(s.results)-maxSearchResults)))
	}
}

func categoryBadge(c domain.Category) string {
	switch c {
	case domain.CategoryNowPlaying:
		return "NOW"
	case domain.CategoryPopular:
		return "POP"
	case domain.CategoryTopRated:
		return "TOP"
	case domain.CategoryUpcoming:
		return "SOON"
	default:
		return "?"
	}
}

// HighlightMatches renders text with the runes at matchedIndexes emphasized
func HighlightMatches(text string, matchedIndexes []int, selected bool) string {
	normal := styles.NormalItemStyle.UnsetPadding()
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle.UnsetPadding()
		match = styles.MatchHighlightSelectedStyle
	}
	if len(matchedIndexes) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive runes with the same style
	var result strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		isMatch := matchSet[i]
		start := i
		for i < len(runes) && matchSet[i] == isMatch {
			i++
		}
		if isMatch {
			result.WriteString(match.Render(string(runes[start:i])))
		} else {
			result.WriteString(normal.Render(string(runes[start:i])))
		}
	}
	return result.String()
}

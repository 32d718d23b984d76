package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Detail panel sizing
const (
	DetailMaxWidth  = 80
	DetailMaxHeight = 22
	detailFrameW    = 6 // Border + horizontal padding
	detailFrameH    = 4 // Border + vertical padding
)

// Detail is the movie detail panel shown over the home page
type Detail struct {
	movie     domain.Movie
	details   *domain.MovieDetails
	loading   bool
	imageBase string

	// Set when the route names a movie the listing does not hold
	missingID string
	note      string

	overview viewport.Model
	width    int // Panel outer width
	height   int // Panel outer height
}

// NewDetail creates a detail panel resolving images against imageBase
func NewDetail(imageBase string) Detail {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown:     DetailKeys.PageDown,
		PageUp:       DetailKeys.PageUp,
		HalfPageUp:   DetailKeys.HalfUp,
		HalfPageDown: DetailKeys.HalfDown,
		Up:           DetailKeys.Up,
		Down:         DetailKeys.Down,
	}
	return Detail{imageBase: imageBase, overview: vp}
}

// SetMovie shows m; details from a previous movie are dropped
func (d *Detail) SetMovie(m domain.Movie) {
	if d.details != nil && d.details.ID != m.ID {
		d.details = nil
	}
	d.movie = m
	d.missingID = ""
	d.note = ""
	d.overview.GotoTop()
	d.refresh()
}

// SetMissing shows a placeholder for route id, which has no loaded movie.
// note says why.
func (d *Detail) SetMissing(id, note string) {
	d.movie = domain.Movie{}
	d.details = nil
	d.loading = false
	d.missingID = id
	d.note = note
	d.overview.GotoTop()
	d.refresh()
}

// Missing returns the route id of the placeholder, if one is shown
func (d Detail) Missing() (string, bool) {
	return d.missingID, d.missingID != ""
}

// SetDetails attaches details fetched for the shown movie. Details for
// any other movie are ignored.
func (d *Detail) SetDetails(details *domain.MovieDetails) bool {
	if details == nil || d.missingID != "" || details.ID != d.movie.ID {
		return false
	}
	d.details = details
	d.loading = false
	d.refresh()
	return true
}

// SetLoading marks details as in flight
func (d *Detail) SetLoading(loading bool) {
	d.loading = loading
	d.refresh()
}

// SetImageBase changes the image host used for the cover URL
func (d *Detail) SetImageBase(base string) {
	d.imageBase = base
}

// Movie returns the shown movie
func (d Detail) Movie() domain.Movie {
	return d.movie
}

// HasDetails reports whether details for the shown movie are attached
func (d Detail) HasDetails() bool {
	return d.details != nil
}

// SetSize fits the panel into a screen of width x height
func (d *Detail) SetSize(screenW, screenH int) {
	d.width = min(DetailMaxWidth, screenW-4)
	d.height = min(DetailMaxHeight, screenH-4)
	if d.width < 30 {
		d.width = min(30, screenW)
	}
	if d.height < 10 {
		d.height = min(10, screenH)
	}
	d.refresh()
}

// Size returns the panel's outer size
func (d Detail) Size() (width, height int) {
	return d.width, d.height
}

// Update scrolls the overview
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	var cmd tea.Cmd
	d.overview, cmd = d.overview.Update(msg)
	return d, cmd
}

// View renders the panel
func (d Detail) View() string {
	contentW := d.width - detailFrameW
	header := d.header(contentW)
	footer := d.footer(contentW)

	body := d.overview.View()
	if !d.overview.AtBottom() {
		footer = styles.DimStyle.Render("↓ more") + "\n" + footer
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return styles.ModalStyle.
		Width(d.width - 2).
		Height(d.height - 2).
		Render(content)
}

// refresh lays out the overview viewport for the current movie and size
func (d *Detail) refresh() {
	contentW := d.width - detailFrameW
	if contentW < 1 {
		return
	}
	headerH := lipgloss.Height(d.header(contentW))
	footerH := lipgloss.Height(d.footer(contentW)) + 1 // Room for the "more" hint
	d.overview.Width = contentW
	d.overview.Height = max(1, d.height-detailFrameH-headerH-footerH)
	d.overview.SetContent(d.body(contentW))
}

func (d Detail) header(width int) string {
	if d.missingID != "" {
		return styles.DimStyle.Render("No backdrop") + "\n\n" +
			styles.ModalTitleStyle.Render(styles.Truncate("Movie "+d.missingID, width))
	}

	var b strings.Builder

	cover := tmdb.ImagePath(d.imageBase, d.movie.BackdropPath, tmdb.SizeOriginal)
	if cover == "" {
		b.WriteString(styles.DimStyle.Render("No backdrop"))
	} else {
		b.WriteString(styles.DimStyle.Render(styles.Truncate(cover, width)))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.ModalTitleStyle.Render(styles.Truncate(d.movie.Title, width)))
	b.WriteString("\n")

	if meta := d.metaLine(); meta != "" {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(meta, width)))
		b.WriteString("\n")
	}
	if d.details != nil && d.details.Tagline != "" {
		b.WriteString(styles.AccentStyle.Italic(true).Render(styles.Truncate(d.details.Tagline, width)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d Detail) metaLine() string {
	var parts []string
	if y := d.movie.Year(); y > 0 {
		parts = append(parts, fmt.Sprintf("%d", y))
	}
	if d.details != nil {
		if rt := d.details.FormattedRuntime(); rt != "" {
			parts = append(parts, rt)
		}
	}
	if r := d.movie.FormattedRating(); r != "" {
		parts = append(parts, "★ "+r)
	}
	if d.details != nil && len(d.details.Genres) > 0 {
		parts = append(parts, d.details.GenreList())
	}
	return strings.Join(parts, " · ")
}

func (d Detail) body(width int) string {
	if d.missingID != "" {
		return styles.WordWrap(d.note, width)
	}
	overview := d.movie.Overview
	if overview == "" {
		overview = "No overview available."
	}
	text := styles.WordWrap(overview, width)
	if d.loading {
		text += "\n\n" + styles.DimStyle.Render("Loading details...")
	}
	return text
}

func (d Detail) footer(width int) string {
	if d.missingID != "" {
		return styles.DimStyle.Render(styles.Truncate(DetailKeys.Close.Help().Key+" close", width))
	}
	hint := DetailKeys.Copy.Help().Key + " copy link · " +
		DetailKeys.Open.Help().Key + " open · " +
		DetailKeys.Close.Help().Key + " close"
	return styles.DimStyle.Render(styles.Truncate(hint, width))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/motion"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// section is a horizontal band of the home page
type section struct {
	zone  string // Hit-test zone, empty for none
	lines []string
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	pageH := m.pageHeight()
	var screen string
	switch {
	case m.State == StateSearching:
		screen = m.searchBox.View()
	case m.overlayShown:
		screen = m.renderOverlay(m.renderScreen(false), pageH)
	default:
		screen = m.renderScreen(true)
	}

	out := screen + "\n" + m.renderStatusBar()
	if m.zones != nil {
		return m.zones.Scan(out)
	}
	return out
}

// updateLayout pushes the terminal size to the components
func (m *Model) updateLayout() {
	m.carousel.SetSize(m.Width - 2*MarginX)
	m.detail.SetSize(m.Width, m.pageHeight())
	m.searchBox.SetSize(m.Width, m.pageHeight())
	m.help.Width = m.Width
	m.clampScroll()
}

// pageHeight is the number of rows the page can use
func (m Model) pageHeight() int {
	return max(1, m.Height-ChromeHeight)
}

// bannerHeight sizes the banner so the carousel fits below it when it can
func (m Model) bannerHeight() int {
	h := m.pageHeight() - components.CarouselRows - 3
	return min(MaxBannerHeight, max(MinBannerHeight, h))
}

// pageRows returns the total height of the home page
func (m Model) pageRows() int {
	if _, ok := m.controller.Banner(); !ok {
		return m.bannerHeight()
	}
	return m.bannerHeight() + 2 + components.CarouselRows
}

// scrollBy moves the page scroll offset by delta rows
func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxScroll := max(0, m.pageRows()-m.pageHeight())
	m.scroll = min(max(0, m.scroll), maxScroll)
}

// renderScreen renders the visible part of the home page
func (m Model) renderScreen(withZones bool) string {
	pageH := m.pageHeight()
	var lines []string
	row := 0
	for _, sec := range m.renderPage() {
		start := max(0, m.scroll-row)
		end := min(len(sec.lines), m.scroll+pageH-row)
		row += len(sec.lines)
		if start >= end {
			continue
		}
		visible := strings.Join(sec.lines[start:end], "\n")
		if withZones && sec.zone != "" {
			visible = m.mark(sec.zone, visible)
		}
		lines = append(lines, strings.Split(visible, "\n")...)
	}
	for len(lines) < pageH {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderPage renders every section of the home page
func (m Model) renderPage() []section {
	banner, ok := m.controller.Banner()
	if !ok {
		return []section{{lines: lines(m.renderPlaceholder())}}
	}

	return []section{
		{zone: zoneBanner, lines: lines(m.renderBanner(banner))},
		{lines: []string{"", m.renderLabel()}},
		{zone: zoneCarousel, lines: lines(m.renderCarousel())},
	}
}

func lines(s string) []string {
	return strings.Split(s, "\n")
}

// renderPlaceholder is shown while the listing loads, after it failed,
// or when it holds no movies
func (m Model) renderPlaceholder() string {
	text := m.spinner.View() + " Loading " + m.category.String() + "..."
	switch q := m.controller.Query(); {
	case m.controller.Loaded():
		text = styles.DimStyle.Render("No movies in " + m.category.String())
	case q.Status == domain.QueryError && !m.fetching:
		text = styles.ErrorStyle.Render("Could not load " + m.category.String())
	}
	return lipgloss.Place(m.Width, m.bannerHeight(),
		lipgloss.Center, lipgloss.Center,
		styles.PlaceholderStyle.Render(text))
}

// renderBanner renders the featured movie
func (m Model) renderBanner(movie domain.Movie) string {
	h := m.bannerHeight()
	contentW := m.Width - styles.BannerStyle.GetHorizontalPadding()
	textW := max(20, contentW/2)
	bg := lipgloss.NewStyle().Background(styles.Surface)

	var parts []string
	if cover := tmdb.ImagePath(m.imageBase, movie.BackdropPath, tmdb.SizeOriginal); cover != "" {
		parts = append(parts, bg.Inherit(styles.DimStyle).Render(styles.Truncate(cover, contentW)))
	}
	parts = append(parts, "")
	parts = append(parts, styles.BannerTitleStyle.Render(styles.Truncate(strings.ToUpper(movie.Title), contentW)))

	overview := strings.Split(styles.WordWrap(movie.Overview, textW), "\n")
	room := h - styles.BannerStyle.GetVerticalPadding() - len(parts) - 2
	if len(overview) > room {
		overview = overview[:max(0, room)]
		if len(overview) > 0 {
			last := len(overview) - 1
			overview[last] = styles.Truncate(overview[last]+" ...", textW)
		}
	}
	for _, line := range overview {
		parts = append(parts, bg.Inherit(styles.SubtitleStyle).Render(line))
	}
	parts = append(parts, "")
	hint := Keys.Enter.Help().Key + " ▸ next page"
	if m.focus == bannerFocus {
		hint = styles.AccentStyle.Inherit(bg).Render(hint)
	} else {
		hint = bg.Inherit(styles.DimStyle).Render(hint)
	}
	parts = append(parts, hint)

	return styles.BannerStyle.
		Width(m.Width).
		Height(h).
		MaxHeight(h).
		AlignVertical(lipgloss.Bottom).
		Render(strings.Join(parts, "\n"))
}

// renderLabel renders the listing name with page dots
func (m Model) renderLabel() string {
	dots := m.dots
	dots.ActiveDot = styles.AccentStyle.Render("•")
	dots.InactiveDot = styles.DimStyle.Render("•")
	dots.TotalPages = m.controller.PageCount()
	dots.Page = m.controller.PageIndex()

	label := styles.TitleStyle.Render(m.category.String())
	if m.controller.Query().Stale {
		label += styles.ErrorStyle.Render(" (offline)")
	}
	return strings.Repeat(" ", MarginX) + label + "  " + dots.View()
}

// renderCarousel renders the boxes of the current page, or both pages
// while a transition runs
func (m Model) renderCarousel() string {
	now := m.now()
	var rows []components.CarouselRow
	if m.slide != nil {
		out, in := m.slide.Frame(now)
		rows = []components.CarouselRow{
			{Movies: m.controller.Slice(m.slide.From), X: roundCells(out.X)},
			{Movies: m.controller.Slice(m.slide.To), X: roundCells(in.X)},
		}
	} else {
		rows = []components.CarouselRow{{Movies: m.controller.CurrentSlice(), Hover: true}}
	}

	pad := strings.Repeat(" ", MarginX)
	body := m.carousel.View(rows, now)
	out := lines(body)
	for i, line := range out {
		out[i] = pad + line + pad
	}
	return strings.Join(out, "\n")
}

func roundCells(v float64) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}

// renderOverlay dims the screen and draws the detail panel over it
func (m Model) renderOverlay(screen string, pageH int) string {
	v := motion.Identity
	if m.overlayAnim != nil {
		v, _ = m.overlayAnim.Frame(m.now())
	}

	if v.Opacity > backdropMinAlpha {
		dimmed := lines(ansi.Strip(screen))
		for i, line := range dimmed {
			dimmed[i] = styles.BackdropStyle.Render(line)
		}
		screen = strings.Join(dimmed, "\n")
	}
	canvas := components.CanvasFrom(screen, m.Width, pageH)
	if v.Opacity < minOverlayAlpha {
		return canvas.String()
	}

	panelW, _ := m.detail.Size()
	panel := lines(m.detail.View())
	x := (m.Width - panelW) / 2
	y := m.overlayTop - m.scroll

	start := max(0, -y)
	end := min(len(panel), pageH-y)
	if start < end {
		visible := m.mark(zoneDetail, strings.Join(panel[start:end], "\n"))
		canvas.Place(visible, x, y+start)
	}
	return canvas.String()
}

// renderStatusBar renders the bottom status line
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.fetching:
		left = m.spinner.View() + " " + styles.DimStyle.Render("Loading "+m.category.String()+"...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var center string
	if m.controller.Loaded() {
		center = styles.DimStyle.Render(fmt.Sprintf("%s · page %d/%d",
			m.category, m.controller.PageIndex()+1, m.controller.PageCount()))
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")
	if m.OverlayVisible() {
		right = styles.AccentStyle.Render("esc") + styles.DimStyle.Render(" close")
	}

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(0, m.Width-leftWidth-rightWidth)
		return ansi.Truncate(left+strings.Repeat(" ", gap)+right, m.Width, "")
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	body := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.View(Keys) + "\n\n" +
		styles.DimStyle.Render("Press esc or ? to return")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Theme is a named color palette
type Theme struct {
	Name    string
	Accent  lipgloss.Color
	Surface lipgloss.Color // Modal and banner background
	Raised  lipgloss.Color // Boxes, selected rows
	Dim     lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
}

// Themes lists the built-in palettes by name
var Themes = map[string]Theme{
	"default": {
		Name:    "default",
		Accent:  lipgloss.Color("#E50914"),
		Surface: lipgloss.Color("#141414"),
		Raised:  lipgloss.Color("#2F2F2F"),
		Dim:     lipgloss.Color("#6B7280"),
		Muted:   lipgloss.Color("#9CA3AF"),
		Text:    lipgloss.Color("#F9FAFB"),
		Success: lipgloss.Color("#10B981"),
		Error:   lipgloss.Color("#EF4444"),
	},
	"amber": {
		Name:    "amber",
		Accent:  lipgloss.Color("#E5A00D"),
		Surface: lipgloss.Color("#1F2937"),
		Raised:  lipgloss.Color("#374151"),
		Dim:     lipgloss.Color("#6B7280"),
		Muted:   lipgloss.Color("#9CA3AF"),
		Text:    lipgloss.Color("#F9FAFB"),
		Success: lipgloss.Color("#10B981"),
		Error:   lipgloss.Color("#EF4444"),
	},
	"ocean": {
		Name:    "ocean",
		Accent:  lipgloss.Color("#38BDF8"),
		Surface: lipgloss.Color("#0F172A"),
		Raised:  lipgloss.Color("#1E293B"),
		Dim:     lipgloss.Color("#64748B"),
		Muted:   lipgloss.Color("#94A3B8"),
		Text:    lipgloss.Color("#F1F5F9"),
		Success: lipgloss.Color("#34D399"),
		Error:   lipgloss.Color("#F87171"),
	},
}

// Current palette
var (
	Accent  lipgloss.Color
	Surface lipgloss.Color
	Raised  lipgloss.Color
	DimGray lipgloss.Color
	Muted   lipgloss.Color
	White   lipgloss.Color
	Green   lipgloss.Color
	Red     lipgloss.Color
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
)

// Home page styles
var (
	BannerStyle      lipgloss.Style
	BannerTitleStyle lipgloss.Style
	BoxStyle         lipgloss.Style
	BoxFocusedStyle  lipgloss.Style
	BoxInfoStyle     lipgloss.Style
	BackdropStyle    lipgloss.Style
	PlaceholderStyle lipgloss.Style
)

// List item styles
var (
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
	DimBadgeStyle     lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
)

// Help, spinner and search styles
var (
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
	SpinnerStyle  lipgloss.Style

	MatchHighlightStyle         lipgloss.Style
	MatchHighlightSelectedStyle lipgloss.Style
)

func init() {
	Apply("default")
}

// CurrentTheme is the name of the palette last applied
var CurrentTheme string

// Apply switches every style to the named palette. Unknown names leave the
// current palette in place and return false.
func Apply(name string) bool {
	t, ok := Themes[strings.ToLower(name)]
	if !ok {
		return false
	}
	CurrentTheme = t.Name

	Accent, Surface, Raised = t.Accent, t.Surface, t.Raised
	DimGray, Muted, White = t.Dim, t.Muted, t.Text
	Green, Red = t.Success, t.Error

	TitleStyle = lipgloss.NewStyle().Foreground(White).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(Muted)
	DimStyle = lipgloss.NewStyle().Foreground(DimGray)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(Accent).
		Padding(0, 1)

	BannerStyle = lipgloss.NewStyle().
		Background(Surface).
		Padding(1, 3)
	BannerTitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(Surface).
		Bold(true)
	BoxStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Background(Raised).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray)
	BoxFocusedStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(Raised).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent)
	BoxInfoStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(Surface)
	BackdropStyle = lipgloss.NewStyle().Foreground(Raised)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(Muted)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(Raised).
		Padding(0, 1)
	NormalItemStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)
	DimBadgeStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Background(Raised).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		Background(Surface)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Bold(true).
		MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(Accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(DimGray)
	SpinnerStyle = lipgloss.NewStyle().Foreground(Accent)

	MatchHighlightStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
	MatchHighlightSelectedStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Background(Raised).
		Bold(true)

	return true
}

// Helper functions

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Pad pads or cuts a string to exactly the given display width
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "")
	}
	return runewidth.FillRight(s, width)
}

// Center places s in the middle of width cells
func Center(s string, width int) string {
	s = Truncate(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// WordWrap wraps text at word boundaries to the given width
func WordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if runewidth.StringWidth(line)+1+runewidth.StringWidth(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

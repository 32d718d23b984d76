package components

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/motion"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Carousel layout constants
const (
	BoxGap       = 1
	BoxHeight    = 5
	MinBoxWidth  = 8
	boxTop       = 2 // Rows reserved above the boxes for the hover lift
	infoRows     = 1
	CarouselRows = boxTop + BoxHeight + infoRows
)

// NoFocus means no box is focused
const NoFocus = -1

// CarouselRow is one page of boxes drawn at a horizontal offset
type CarouselRow struct {
	Movies []domain.Movie
	X      int
	Hover  bool // Draw the focused box with its hover animation
}

// Carousel renders a row of movie boxes and animates the focused one
type Carousel struct {
	width    int
	pageSize int
	focus    int

	boxVariants  motion.Variants
	infoVariants motion.Variants
	boxes        []*motion.Animator
	infos        []*motion.Animator
}

// NewCarousel creates a carousel with pageSize slots
func NewCarousel(pageSize int, boxes, infos motion.Variants) Carousel {
	c := Carousel{focus: NoFocus, boxVariants: boxes, infoVariants: infos}
	c.SetPageSize(pageSize)
	return c
}

// SetSize updates the carousel width
func (c *Carousel) SetSize(width int) {
	c.width = width
}

// SetPageSize resets the slots for n boxes per page
func (c *Carousel) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	c.pageSize = n
	c.boxes = make([]*motion.Animator, n)
	c.infos = make([]*motion.Animator, n)
	for i := range c.boxes {
		c.boxes[i] = motion.Settled(motion.StateNormal, motion.Identity)
		c.infos[i] = motion.Settled(motion.StateNormal, motion.Values{Scale: 1})
	}
	if c.focus >= n {
		c.focus = n - 1
	}
}

// SetVariants replaces the hover descriptors, e.g. after a config change
func (c *Carousel) SetVariants(boxes, infos motion.Variants) {
	c.boxVariants = boxes
	c.infoVariants = infos
}

// PageSize returns the number of slots
func (c Carousel) PageSize() int {
	return c.pageSize
}

// Focused returns the focused slot, or NoFocus
func (c Carousel) Focused() int {
	return c.focus
}

// Focus moves the hover state to slot at now. NoFocus clears it.
func (c *Carousel) Focus(slot int, now time.Time) {
	if slot >= c.pageSize {
		slot = c.pageSize - 1
	}
	if slot < NoFocus {
		slot = NoFocus
	}
	if slot == c.focus {
		return
	}
	if c.focus != NoFocus {
		c.boxes[c.focus].Retarget(c.boxVariants.MustGet(motion.StateNormal), now)
		c.infos[c.focus].Retarget(c.infoVariants.MustGet(motion.StateNormal), now)
	}
	c.focus = slot
	if slot != NoFocus {
		c.boxes[slot].Retarget(c.boxVariants.MustGet(motion.StateHover), now)
		c.infos[slot].Retarget(c.infoVariants.MustGet(motion.StateHover), now)
	}
}

// Animating reports whether any box is still moving at now
func (c Carousel) Animating(now time.Time) bool {
	for i := range c.boxes {
		if !c.boxes[i].Done(now) || !c.infos[i].Done(now) {
			return true
		}
	}
	return false
}

// SlotWidth returns the width of one box
func (c Carousel) SlotWidth() int {
	w := (c.width - BoxGap*(c.pageSize-1)) / c.pageSize
	if w < MinBoxWidth {
		return MinBoxWidth
	}
	return w
}

// SlotX returns the left edge of slot i in an unshifted row
func (c Carousel) SlotX(i int) int {
	return i * (c.SlotWidth() + BoxGap)
}

// SlotAt maps a column inside the carousel to a slot. Gaps and columns
// past the last slot give NoFocus.
func (c Carousel) SlotAt(x, count int) int {
	if x < 0 {
		return NoFocus
	}
	step := c.SlotWidth() + BoxGap
	slot := x / step
	if slot >= count || slot >= c.pageSize || x%step >= c.SlotWidth() {
		return NoFocus
	}
	return slot
}

// View draws the rows at now. Unfocused boxes are drawn first so the
// focused one overlaps its neighbours when scaled.
func (c Carousel) View(rows []CarouselRow, now time.Time) string {
	canvas := NewCanvas(c.width, CarouselRows)
	w := c.SlotWidth()

	for _, row := range rows {
		for i, m := range row.Movies {
			if row.Hover && i == c.focus {
				continue
			}
			canvas.Place(renderBox(m, w, BoxHeight, false), row.X+c.SlotX(i), boxTop)
		}
	}

	for _, row := range rows {
		if !row.Hover || c.focus == NoFocus || c.focus >= len(row.Movies) {
			continue
		}
		m := row.Movies[c.focus]
		box, _ := c.boxes[c.focus].Frame(now)
		info, _ := c.infos[c.focus].Frame(now)

		bw := int(math.Round(float64(w) * box.Scale))
		bh := int(math.Round(float64(BoxHeight) * box.Scale))
		x := row.X + c.SlotX(c.focus) - (bw-w)/2
		y := boxTop - (bh-BoxHeight)/2 + int(math.Round(box.Y))
		if y < 0 {
			y = 0
		}
		canvas.Place(renderBox(m, bw, bh, true), x, y)

		if info.Opacity >= 0.5 {
			canvas.Place(renderInfo(m, bw), x, y+bh)
		}
	}

	return canvas.String()
}

// renderBox draws one movie box of the given outer size
func renderBox(m domain.Movie, width, height int, focused bool) string {
	style := styles.BoxStyle
	if focused {
		style = styles.BoxFocusedStyle
	}
	inner := width - 2
	if inner < 1 {
		inner = 1
	}
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}

	lines := []string{styles.Center(m.Title, inner)}
	if y := m.Year(); y > 0 && innerH > 1 {
		lines = append(lines, styles.Center(fmt.Sprintf("%d", y), inner))
	}
	return style.
		Width(inner).
		Height(innerH).
		AlignVertical(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderInfo draws the strip under a focused box
func renderInfo(m domain.Movie, width int) string {
	text := m.Title
	if r := m.FormattedRating(); r != "" {
		text += " · ★ " + r
	}
	return styles.BoxInfoStyle.Render(styles.Pad(" "+text, width))
}

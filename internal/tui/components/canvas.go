package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canvas is a fixed-size grid of styled lines that blocks can be drawn
// onto at any offset. Parts of a block outside the canvas are clipped.
type Canvas struct {
	width int
	lines []string
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return &Canvas{width: width, lines: lines}
}

// CanvasFrom wraps existing rendered lines, padding or cutting each to width
func CanvasFrom(content string, width, height int) *Canvas {
	c := NewCanvas(width, height)
	for i, line := range strings.Split(content, "\n") {
		if i >= height {
			break
		}
		c.lines[i] = fitLine(line, width)
	}
	return c
}

// Place draws block with its top-left corner at (x, y)
func (c *Canvas) Place(block string, x, y int) {
	if block == "" {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}

		px := x
		lw := ansi.StringWidth(line)
		if px < 0 {
			line = ansi.TruncateLeft(line, -px, "")
			lw += px
			px = 0
		}
		if lw <= 0 || px >= c.width {
			continue
		}
		if px+lw > c.width {
			line = ansi.Truncate(line, c.width-px, "")
			lw = c.width - px
		}

		base := c.lines[row]
		c.lines[row] = ansi.Truncate(base, px, "") + line + ansi.TruncateLeft(base, px+lw, "")
	}
}

// Lines returns the canvas rows
func (c *Canvas) Lines() []string {
	return c.lines
}

// String joins the canvas rows
func (c *Canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// fitLine pads or cuts line to exactly width cells
func fitLine(line string, width int) string {
	w := ansi.StringWidth(line)
	switch {
	case w > width:
		return ansi.Truncate(line, width, "")
	case w < width:
		return line + strings.Repeat(" ", width-w)
	default:
		return line
	}
}

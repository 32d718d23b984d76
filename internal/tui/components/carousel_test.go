package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/motion"
)

func testCarousel(width, pageSize int) Carousel {
	c := NewCarousel(pageSize,
		motion.BoxVariants(200*time.Millisecond, 200*time.Millisecond),
		motion.InfoVariants(200*time.Millisecond, 200*time.Millisecond))
	c.SetSize(width)
	return c
}

func TestCarousel_SlotAt(t *testing.T) {
	c := testCarousel(65, 6) // slot width 10, step 11

	tests := []struct {
		x, count int
		want     int
	}{
		{0, 6, 0},
		{9, 6, 0},
		{10, 6, NoFocus}, // gap
		{11, 6, 1},
		{60, 6, 5},
		{60, 3, NoFocus}, // short page
		{-1, 6, NoFocus},
	}
	for _, tt := range tests {
		if got := c.SlotAt(tt.x, tt.count); got != tt.want {
			t.Errorf("SlotAt(%d, %d) = %d, want %d", tt.x, tt.count, got, tt.want)
		}
	}
}

func TestCarousel_FocusAnimates(t *testing.T) {
	c := testCarousel(80, 6)
	start := time.Now()

	c.Focus(2, start)
	if c.Focused() != 2 {
		t.Fatalf("focus = %d, want 2", c.Focused())
	}
	if !c.Animating(start.Add(100 * time.Millisecond)) {
		t.Errorf("expected hover still delayed at 100ms")
	}
	if c.Animating(start.Add(time.Second)) {
		t.Errorf("expected hover settled after 1s")
	}

	c.Focus(9, start)
	if c.Focused() != 5 {
		t.Errorf("focus past the last slot = %d, want 5", c.Focused())
	}
	c.Focus(NoFocus, start)
	if c.Focused() != NoFocus {
		t.Errorf("expected focus cleared")
	}
}

func TestCarousel_View(t *testing.T) {
	c := testCarousel(80, 3)
	movies := []domain.Movie{
		{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25"},
		{ID: 2, Title: "Heat"},
		{ID: 3, Title: "Ran"},
	}
	start := time.Now()
	c.Focus(1, start)

	out := c.View([]CarouselRow{{Movies: movies, Hover: true}}, start.Add(time.Second))
	lines := strings.Split(out, "\n")
	if len(lines) != CarouselRows {
		t.Fatalf("rows = %d, want %d", len(lines), CarouselRows)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{"Alien", "1979", "Heat", "Ran"} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 80 {
			t.Errorf("row %d width = %d, want 80", i, w)
		}
	}
}

func TestCarousel_ViewOffscreenRow(t *testing.T) {
	c := testCarousel(40, 2)
	movies := []domain.Movie{{ID: 1, Title: "Gone"}, {ID: 2, Title: "Away"}}

	out := c.View([]CarouselRow{{Movies: movies, X: 45}}, time.Now())
	if strings.TrimSpace(ansi.Strip(out)) != "" {
		t.Errorf("expected a row shifted past the edge to be invisible, got:\n%s", ansi.Strip(out))
	}
}

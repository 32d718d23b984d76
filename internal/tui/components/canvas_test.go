package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCanvas_Place(t *testing.T) {
	tests := []struct {
		name  string
		block string
		x, y  int
		want  []string
	}{
		{
			name:  "inside",
			block: "ab\ncd",
			x:     3, y: 1,
			want: []string{"        ", "   ab   ", "   cd   "},
		},
		{
			name:  "clipped left",
			block: "xyz",
			x:     -1, y: 0,
			want: []string{"yz      ", "        ", "        "},
		},
		{
			name:  "clipped right",
			block: "xyz",
			x:     6, y: 2,
			want: []string{"        ", "        ", "      xy"},
		},
		{
			name:  "clipped bottom",
			block: "a\nb\nc",
			x:     0, y: 2,
			want: []string{"        ", "        ", "a       "},
		},
		{
			name:  "fully outside",
			block: "abc",
			x:     8, y: 0,
			want: []string{"        ", "        ", "        "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(8, 3)
			c.Place(tt.block, tt.x, tt.y)
			for i, line := range c.Lines() {
				if line != tt.want[i] {
					t.Errorf("row %d = %q, want %q", i, line, tt.want[i])
				}
			}
		})
	}
}

func TestCanvas_PlaceOverStyledBase(t *testing.T) {
	base := "\x1b[31mredredred\x1b[0m"
	c := CanvasFrom(base, 9, 1)
	c.Place("XX", 3, 0)

	got := ansi.Strip(c.String())
	if got != "redXXdred" {
		t.Errorf("stripped = %q, want %q", got, "redXXdred")
	}
	if w := ansi.StringWidth(c.String()); w != 9 {
		t.Errorf("width = %d, want 9", w)
	}
}

func TestCanvasFrom_PadsAndCuts(t *testing.T) {
	c := CanvasFrom("abc\nabcdefgh", 5, 3)
	want := []string{"abc  ", "abcde", "     "}
	if got := c.Lines(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

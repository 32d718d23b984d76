package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

func TestDetail_ShowsMovieAndDetails(t *testing.T) {
	d := NewDetail("https://img.example.test/t/p")
	d.SetSize(100, 40)
	d.SetMovie(domain.Movie{
		ID:           42,
		Title:        "The Answer",
		Overview:     "A supercomputer thinks for a very long time.",
		BackdropPath: "/answer.jpg",
		ReleaseDate:  "2005-04-28",
	})
	d.SetLoading(true)

	plain := ansi.Strip(d.View())
	for _, want := range []string{"The Answer", "supercomputer", "https://img.example.test/t/p/original/answer.jpg", "2005", "Loading details"} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}

	if d.SetDetails(&domain.MovieDetails{Movie: domain.Movie{ID: 7}, Runtime: 90}) {
		t.Errorf("details for another movie should be ignored")
	}
	if !d.SetDetails(&domain.MovieDetails{Movie: domain.Movie{ID: 42}, Runtime: 109, Genres: []string{"Comedy", "Sci-Fi"}}) {
		t.Fatalf("details for the shown movie should attach")
	}

	plain = ansi.Strip(d.View())
	for _, want := range []string{"1h 49m", "Comedy, Sci-Fi"} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Loading details") {
		t.Errorf("loading hint should clear once details arrive")
	}

	w, h := d.Size()
	lines := strings.Split(d.View(), "\n")
	if len(lines) != h {
		t.Errorf("panel height = %d, want %d", len(lines), h)
	}
	if got := ansi.StringWidth(lines[0]); got != w {
		t.Errorf("panel width = %d, want %d", got, w)
	}
}

func TestDetail_NoBackdrop(t *testing.T) {
	d := NewDetail("https://img.example.test/t/p")
	d.SetSize(80, 30)
	d.SetMovie(domain.Movie{ID: 1, Title: "Plain"})

	if !strings.Contains(ansi.Strip(d.View()), "No backdrop") {
		t.Errorf("expected placeholder for a movie without backdrop")
	}
}

func TestDetail_SetMovieDropsOtherDetails(t *testing.T) {
	d := NewDetail("")
	d.SetSize(80, 30)
	d.SetMovie(domain.Movie{ID: 1})
	d.SetDetails(&domain.MovieDetails{Movie: domain.Movie{ID: 1}})
	d.SetMovie(domain.Movie{ID: 2})
	if d.HasDetails() {
		t.Errorf("details for the previous movie survived SetMovie")
	}
}

func TestHighlightMatches_KeepsText(t *testing.T) {
	got := ansi.Strip(HighlightMatches("Amélie", []int{0, 2, 3}, false))
	if got != "Amélie" {
		t.Errorf("stripped = %q, want %q", got, "Amélie")
	}
	if ansi.Strip(HighlightMatches("Heat", nil, true)) != "Heat" {
		t.Errorf("unhighlighted text changed")
	}
}

func TestSearch_NavigateAndSelect(t *testing.T) {
	s := NewSearch()
	s.SetSize(100, 30)
	s.Show()
	s.SetResults([]search.Result{
		{Movie: domain.Movie{ID: 1, Title: "Alien"}, Category: domain.CategoryPopular},
		{Movie: domain.Movie{ID: 2, Title: "Aliens"}, Category: domain.CategoryTopRated},
	})

	s, _, selected := s.Update(tea.KeyMsg{Type: tea.KeyDown})
	if selected {
		t.Fatalf("moving the cursor should not select")
	}
	s, _, selected = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !selected {
		t.Fatalf("enter should select")
	}
	got, ok := s.Selected()
	if !ok || got.Movie.ID != 2 || got.Category != domain.CategoryTopRated {
		t.Errorf("selected = %+v, want Aliens from top rated", got)
	}

	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.IsVisible() {
		t.Errorf("esc should hide the search")
	}
}

func TestSearch_TypingChangesQuery(t *testing.T) {
	s := NewSearch()
	s.Show()
	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dune")})
	if s.Query() != "dune" {
		t.Fatalf("query = %q, want dune", s.Query())
	}
	if !s.QueryChanged() {
		t.Errorf("expected query change to be reported")
	}
	if s.QueryChanged() {
		t.Errorf("query change reported twice")
	}

	s, _, selected := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if selected {
		t.Errorf("enter without results should not select")
	}
}

func TestDetail_MissingPlaceholder(t *testing.T) {
	d := NewDetail("")
	d.SetSize(100, 40)
	d.SetMovie(domain.Movie{ID: 5, Title: "Gone Soon", Overview: "About to vanish."})
	d.SetMissing("5", "Not in Popular.")

	plain := ansi.Strip(d.View())
	for _, want := range []string{"Movie 5", "Not in Popular."} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}
	for _, gone := range []string{"Gone Soon", "copy link"} {
		if strings.Contains(plain, gone) {
			t.Errorf("placeholder should not show %q", gone)
		}
	}
	if id, ok := d.Missing(); !ok || id != "5" {
		t.Errorf("Missing() = %q, %v", id, ok)
	}
	if d.SetDetails(&domain.MovieDetails{Movie: domain.Movie{ID: 0}}) {
		t.Error("details should not attach to a placeholder")
	}

	d.SetMovie(domain.Movie{ID: 6, Title: "Back Again"})
	if _, ok := d.Missing(); ok {
		t.Error("SetMovie should clear the placeholder")
	}
}

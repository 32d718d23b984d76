package router

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, path string
		ok            bool
		id            string
	}{
		{"/movies/:movieId", "/movies/42", true, "42"},
		{"/movies/:movieId", "/movies/42/", true, "42"},
		{"/movies/:movieId", "/movies", false, ""},
		{"/movies/:movieId", "/", false, ""},
		{"/movies/:movieId", "/shows/42", false, ""},
		{"/movies/:movieId", "/movies/42/cast", false, ""},
		{"/", "/", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			params, ok := Match(tt.pattern, tt.path)
			if ok != tt.ok {
				t.Fatalf("Match(%q, %q) ok = %v, want %v", tt.pattern, tt.path, ok, tt.ok)
			}
			if got := params.Get("movieId"); got != tt.id {
				t.Errorf("movieId = %q, want %q", got, tt.id)
			}
		})
	}
}

func TestRouterHistory(t *testing.T) {
	r := New()
	if r.Location() != Root || r.CanGoBack() {
		t.Fatalf("new router should sit at root with no history")
	}
	if r.Back() {
		t.Errorf("Back at root should report false")
	}

	r.Navigate("/movies/7")
	r.Navigate("/movies/7")
	r.Navigate("movies/42")
	if r.Location() != "/movies/42" {
		t.Fatalf("location = %q", r.Location())
	}

	params, ok := r.Match("/movies/:movieId")
	if !ok || params.Get("movieId") != "42" {
		t.Errorf("match = %v, %v", params, ok)
	}

	if !r.Back() || r.Location() != "/movies/7" {
		t.Errorf("after back location = %q, want /movies/7", r.Location())
	}
	if !r.Back() || r.Location() != Root {
		t.Errorf("duplicate navigate should not add history, location = %q", r.Location())
	}

	r.Navigate("/movies/1")
	r.Reset()
	if r.Location() != Root || r.CanGoBack() {
		t.Errorf("reset should return to root")
	}
}

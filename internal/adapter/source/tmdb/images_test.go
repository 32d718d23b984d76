package tmdb

import "testing"

func TestImagePath(t *testing.T) {
	tests := []struct {
		name, base, path, size, want string
	}{
		{"default size", "https://img.test/t/p", "/abc.jpg", "", "https://img.test/t/p/original/abc.jpg"},
		{"carousel size", "https://img.test/t/p/", "/abc.jpg", SizeCarousel, "https://img.test/t/p/w500/abc.jpg"},
		{"no leading slash", "https://img.test/t/p", "abc.jpg", SizePoster, "https://img.test/t/p/w342/abc.jpg"},
		{"default base", "", "/abc.jpg", SizeOriginal, DefaultImageBaseURL + "/original/abc.jpg"},
		{"null path", "https://img.test/t/p", "", SizeCarousel, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImagePath(tt.base, tt.path, tt.size); got != tt.want {
				t.Errorf("ImagePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMovieURL(t *testing.T) {
	if got := MovieURL(42); got != "https://www.themoviedb.org/movie/42" {
		t.Errorf("MovieURL = %q", got)
	}
}

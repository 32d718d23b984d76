package tmdb

import (
	"fmt"
	"strings"
)

// Image sizes accepted by the image CDN
const (
	SizeOriginal = "original"
	SizeBackdrop = "w1280"
	SizeCarousel = "w500"
	SizePoster   = "w342"
)

// DefaultImageBaseURL is the public image CDN
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

// webBaseURL hosts the human-facing movie pages
const webBaseURL = "https://www.themoviedb.org"

// ImagePath resolves a relative image path to a full URL.
// size defaults to "original"; an empty path yields "".
func ImagePath(base, path, size string) string {
	if path == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	if size == "" {
		size = SizeOriginal
	}
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(base, "/"),
		size,
		strings.TrimLeft(path, "/"))
}

// MovieURL returns the web page for a movie
func MovieURL(id int) string {
	return fmt.Sprintf("%s/movie/%d", webBaseURL, id)
}

package domain

import "fmt"

// Category identifies one of the remote movie listings
type Category string

const (
	CategoryNowPlaying Category = "now_playing"
	CategoryPopular    Category = "popular"
	CategoryTopRated   Category = "top_rated"
	CategoryUpcoming   Category = "upcoming"
)

// Categories returns all listings in display order
func Categories() []Category {
	return []Category{CategoryNowPlaying, CategoryPopular, CategoryTopRated, CategoryUpcoming}
}

// String returns the display name for the category
func (c Category) String() string {
	switch c {
	case CategoryNowPlaying:
		return "Now Playing"
	case CategoryPopular:
		return "Popular"
	case CategoryTopRated:
		return "Top Rated"
	case CategoryUpcoming:
		return "Upcoming"
	default:
		return string(c)
	}
}

// CacheKey returns the key the listing is cached and deduplicated under
func (c Category) CacheKey() string {
	return "movies:" + string(c)
}

// Next returns the following category, wrapping at the end
func (c Category) Next() Category {
	all := Categories()
	for i, cat := range all {
		if cat == c {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// ParseCategory validates a category name from config or flags
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

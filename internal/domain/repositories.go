package domain

import "context"

// ListingQueries: Synchronous, cache-only reads.
// All methods return instantly. NEVER block on network.
// Safe to call from View().
type ListingQueries interface {
	GetCachedResultSet(category Category) (*ResultSet, bool)
	GetCachedDetails(id int) (*MovieDetails, bool)
}

// MovieRepository: Network operations (implemented by the API source)
type MovieRepository interface {
	ListMovies(ctx context.Context, category Category, page int) (*ResultSet, error)
	GetMovie(ctx context.Context, id int) (*MovieDetails, error)
}

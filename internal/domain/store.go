package domain

// Store handles the local cache (BoltDB + memory).
// Keys are listing cache keys (movies:{category}) and movie IDs.
type Store interface {
	// === Listings ===
	GetResultSet(key string) (*ResultSet, bool)
	SaveResultSet(key string, rs *ResultSet) error

	// === Details ===
	GetMovieDetails(id int) (*MovieDetails, bool)
	SaveMovieDetails(details *MovieDetails) error

	// === Invalidation ===
	Invalidate(key string)
	InvalidateDetails()
	InvalidateAll()

	Close() error
}

package domain

// QueryStatus is the lifecycle of one listing fetch
type QueryStatus int

const (
	QueryLoading QueryStatus = iota
	QuerySuccess
	QueryError
)

// String returns a lowercase name for logs
func (s QueryStatus) String() string {
	switch s {
	case QueryLoading:
		return "loading"
	case QuerySuccess:
		return "success"
	case QueryError:
		return "error"
	default:
		return "unknown"
	}
}

// Query is the data source's answer for one cache key
type Query struct {
	Key    string
	Status QueryStatus
	Data   *ResultSet
	Err    error
	Stale  bool // Data came from an expired cache entry because the fetch failed
}

// Loaded reports whether the query carries usable data
func (q Query) Loaded() bool {
	return q.Status == QuerySuccess && q.Data != nil
}

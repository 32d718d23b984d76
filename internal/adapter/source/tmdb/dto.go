package tmdb

// ListResponse is the envelope of the /movie/{category} endpoints
type ListResponse struct {
	Page         int        `json:"page"`
	Results      []MovieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Dates        *DatesDTO  `json:"dates,omitempty"` // now_playing and upcoming only
}

// DatesDTO is the release window of a now-playing or upcoming listing
type DatesDTO struct {
	Maximum string `json:"maximum"`
	Minimum string `json:"minimum"`
}

// MovieDTO is one entry of a listing
type MovieDTO struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	BackdropPath     *string `json:"backdrop_path"` // null for titles without art
	PosterPath       *string `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
}

// GenreDTO is a named genre
type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DetailsDTO is the /movie/{id} response
type DetailsDTO struct {
	MovieDTO
	Tagline  string     `json:"tagline"`
	Runtime  *int       `json:"runtime"`
	Genres   []GenreDTO `json:"genres"`
	Homepage string     `json:"homepage"`
	Status   string     `json:"status"`
	IMDBID   string     `json:"imdb_id"`
}

// AuthResponse is the /authentication response
type AuthResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// ErrorResponse is the body TMDB sends with non-2xx responses
type ErrorResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

package tmdb

import (
	"errors"
	"fmt"
)

// ErrMissingResults reports a 2xx payload without a results collection. TMDB
// answers that way when a credential is rejected or a rate limit trips.
var ErrMissingResults = errors.New("response has no results")

// PopularResponse mirrors /movie/popular.
//
// Results stays nil when the key is absent or null; an empty array decodes to
// an empty, non-nil slice.
type PopularResponse struct {
	Page          int           `json:"page"`
	Results       []MovieResult `json:"results"`
	TotalPages    int           `json:"total_pages"`
	TotalResults  int           `json:"total_results"`
	StatusCode    int           `json:"status_code"`
	StatusMessage string        `json:"status_message"`
}

// MovieResult is one entry of a movie list payload.
type MovieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	Adult       bool    `json:"adult"`
}

// Genre is one entry of /genre/movie/list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse mirrors /genre/movie/list.
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// GenreNames indexes genres by ID.
func GenreNames(genres []Genre) map[int]string {
	names := make(map[int]string, len(genres))
	for _, g := range genres {
		if g.Name == "" {
			continue
		}
		names[g.ID] = g.Name
	}
	return names
}

// APIError is returned for HTTP error statuses. Code and Message carry the
// status_code/status_message body TMDB attaches to most failures.
type APIError struct {
	Path       string
	HTTPStatus int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.HTTPStatus)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.HTTPStatus, e.Message)
}

// Unauthorized reports whether the upstream rejected the credential.
func (e *APIError) Unauthorized() bool {
	return e.HTTPStatus == 401 || e.Code == 7
}

// RateLimited reports whether the upstream throttled the request.
func (e *APIError) RateLimited() bool {
	return e.HTTPStatus == 429 || e.Code == 25
}

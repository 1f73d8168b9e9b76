package tmdb

import (
	"encoding/json"
	"testing"
)

func TestPopularResponse_ResultsPresence(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantNil bool
	}{
		{"absent", `{"status_code":7}`, true},
		{"null", `{"results":null}`, true},
		{"empty", `{"results":[]}`, false},
		{"populated", `{"results":[{"title":"Dune"}]}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var resp PopularResponse
			if err := json.Unmarshal([]byte(tc.body), &resp); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if (resp.Results == nil) != tc.wantNil {
				t.Fatalf("Results nil = %v, want %v", resp.Results == nil, tc.wantNil)
			}
		})
	}
}

func TestMovieResult_NullPosterPath(t *testing.T) {
	var m MovieResult
	if err := json.Unmarshal([]byte(`{"title":"X","poster_path":null,"release_date":""}`), &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m.PosterPath != "" || m.ReleaseDate != "" {
		t.Fatalf("MovieResult = %#v, want empty poster and release date", m)
	}
}

func TestAPIError(t *testing.T) {
	err := &APIError{Path: "/movie/popular", HTTPStatus: 429}
	if !err.RateLimited() {
		t.Fatalf("RateLimited = false, want true for 429")
	}
	if err.Unauthorized() {
		t.Fatalf("Unauthorized = true, want false for 429")
	}
	if got := err.Error(); got != "api /movie/popular returned status 429" {
		t.Fatalf("Error() = %q", got)
	}
	err.Message = "slow down"
	if got := err.Error(); got != "api /movie/popular returned status 429: slow down" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestGenreNames_SkipsBlank(t *testing.T) {
	names := GenreNames([]Genre{{ID: 1, Name: "Drama"}, {ID: 2}})
	if len(names) != 1 || names[1] != "Drama" {
		t.Fatalf("GenreNames = %v, want only Drama", names)
	}
}

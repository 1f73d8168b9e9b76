package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL+"/" {
		t.Fatalf("default base = %q, want %q", u.String(), DefaultBaseURL+"/")
	}

	u, err = parseBaseURL("example.com:1234/3?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/3/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_FetchPopularEncodesQueryAndCredentials(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotAuth, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":438631,"title":"Dune","release_date":"2021-10-01","poster_path":"/abc.jpg","genre_ids":[878,12]}]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(ClientOptions{
		BaseURL:     server.URL + "/3",
		Credentials: Credentials{APIKey: "k3y", AccessToken: "t0ken"},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	resp, err := c.FetchPopular(ctx, PopularQuery{})
	if err != nil {
		t.Fatalf("FetchPopular returned error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Dune" {
		t.Fatalf("FetchPopular results = %#v, want Dune", resp.Results)
	}
	if got := resp.Results[0].GenreIDs; len(got) != 2 || got[0] != 878 {
		t.Fatalf("GenreIDs = %v, want [878 12]", got)
	}
	if gotPath != "/3/movie/popular" {
		t.Fatalf("path = %q, want /3/movie/popular", gotPath)
	}
	if gotQuery.Get("api_key") != "k3y" || gotQuery.Get("language") != "en-US" || gotQuery.Get("page") != "1" {
		t.Fatalf("query = %v, want api_key, language=en-US and page=1", gotQuery)
	}
	if gotAuth != "Bearer t0ken" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "marquee/") {
		t.Fatalf("User-Agent = %q, want marquee/*", gotUserAgent)
	}
}

func TestClient_FetchPopularMissingResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"status_code":25,"status_message":"Your request count is over the allowed limit."}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(ClientOptions{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	resp, err := c.FetchPopular(context.Background(), PopularQuery{Page: 1})
	if !errors.Is(err, ErrMissingResults) {
		t.Fatalf("FetchPopular error = %v, want ErrMissingResults", err)
	}
	if !strings.Contains(err.Error(), "over the allowed limit") {
		t.Fatalf("FetchPopular error = %q, want upstream status message", err.Error())
	}
	if resp == nil || resp.StatusCode != 25 {
		t.Fatalf("FetchPopular response = %#v, want decoded status payload", resp)
	}
}

func TestClient_FetchPopularEmptyResultsIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(ClientOptions{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	resp, err := c.FetchPopular(context.Background(), PopularQuery{})
	if err != nil {
		t.Fatalf("FetchPopular returned error: %v", err)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Fatalf("Results = %#v, want empty non-nil slice", resp.Results)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/popular":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key.","success":false}`))
		case "/genre/movie/list":
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(ClientOptions{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchPopular(context.Background(), PopularQuery{})
	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("FetchPopular error = %v, want *APIError", err)
	}
	if !apiErr.Unauthorized() || apiErr.Code != 7 {
		t.Fatalf("APIError = %#v, want unauthorized code 7", apiErr)
	}
	if !strings.Contains(err.Error(), "returned status 401") {
		t.Fatalf("FetchPopular error = %q, want status 401", err.Error())
	}

	_, err = c.FetchGenres(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchGenres error = %v, want decode response error", err)
	}
}

func TestClient_FetchGenres(t *testing.T) {
	t.Parallel()

	var gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLanguage = r.URL.Query().Get("language")
		_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(ClientOptions{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	genres, err := c.FetchGenres(context.Background(), "de-DE")
	if err != nil {
		t.Fatalf("FetchGenres returned error: %v", err)
	}
	if gotLanguage != "de-DE" {
		t.Fatalf("language = %q, want de-DE", gotLanguage)
	}
	names := GenreNames(genres)
	if names[878] != "Science Fiction" || names[28] != "Action" {
		t.Fatalf("GenreNames = %v, want Action and Science Fiction", names)
	}
}

func TestClient_ContextCancelAbortsRequest(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, err := NewClient(ClientOptions{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err = c.FetchPopular(ctx, PopularQuery{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchPopular error = %v, want context.Canceled", err)
	}
}

func TestRedactURL(t *testing.T) {
	u, _ := url.Parse("https://api.themoviedb.org/3/movie/popular?api_key=secret&page=1")
	got := redactURL(u)
	if strings.Contains(got, "secret") {
		t.Fatalf("redactURL = %q, leaked api key", got)
	}
	if !strings.Contains(got, "page=1") {
		t.Fatalf("redactURL = %q, want other params kept", got)
	}
	if u.Query().Get("api_key") != "secret" {
		t.Fatalf("redactURL mutated its input")
	}
}

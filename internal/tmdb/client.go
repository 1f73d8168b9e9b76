package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher is the subset of the TMDB API the catalog needs.
// *Client implements it; tests substitute fakes.
type Fetcher interface {
	FetchPopular(ctx context.Context, query PopularQuery) (*PopularResponse, error)
	FetchGenres(ctx context.Context, language string) ([]Genre, error)
}

var _ Fetcher = (*Client)(nil)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage     = "en-US"

	defaultUserAgent = "marquee/0.1"
	defaultTimeout   = 10 * time.Second
	errorBodyLimit   = 64 << 10
)

// Credentials authenticate against TMDB. APIKey is the v3 key sent as the
// api_key query parameter; AccessToken is the v4 read token sent as a bearer
// header. Either may be empty.
type Credentials struct {
	APIKey      string
	AccessToken string
}

// ClientOptions configure NewClient.
type ClientOptions struct {
	BaseURL     string
	Credentials Credentials
	Timeout     time.Duration
	Logger      *zap.Logger
	HTTPClient  *http.Client
}

// Client talks to the TMDB v3 HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	creds     Credentials
	userAgent string
	logger    *zap.Logger
}

// NewClient builds a Client from opts, filling defaults for empty fields.
func NewClient(opts ClientOptions) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:   base,
		http:      httpClient,
		creds:     opts.Credentials,
		userAgent: defaultUserAgent,
		logger:    logger.Named("tmdb"),
	}, nil
}

// PopularQuery configures /movie/popular requests.
type PopularQuery struct {
	Language string
	Page     int
}

// FetchPopular retrieves one page of the popular-movies list. A payload
// without results yields ErrMissingResults alongside the decoded response so
// callers can inspect status_message.
func (c *Client) FetchPopular(ctx context.Context, query PopularQuery) (*PopularResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("language", languageOrDefault(query.Language))
	page := query.Page
	if page <= 0 {
		page = 1
	}
	values.Set("page", strconv.Itoa(page))

	rel := &url.URL{Path: "movie/popular", RawQuery: values.Encode()}
	var payload PopularResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		if msg := strings.TrimSpace(payload.StatusMessage); msg != "" {
			return &payload, fmt.Errorf("%w: %s", ErrMissingResults, msg)
		}
		return &payload, ErrMissingResults
	}
	return &payload, nil
}

// FetchGenres retrieves the movie genre list used to resolve genre_ids.
func (c *Client) FetchGenres(ctx context.Context, language string) ([]Genre, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("language", languageOrDefault(language))
	rel := &url.URL{Path: "genre/movie/list", RawQuery: values.Encode()}
	var payload GenreListResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	if key := strings.TrimSpace(c.creds.APIKey); key != "" {
		q := reqURL.Query()
		q.Set("api_key", key)
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token := strings.TrimSpace(c.creds.AccessToken); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("tmdb request",
		zap.String("method", method),
		zap.String("url", redactURL(reqURL)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return decodeAPIError(rel.Path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(path string, resp *http.Response) error {
	apiErr := &APIError{Path: "/" + strings.TrimPrefix(path, "/"), HTTPStatus: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	var status struct {
		Code    int    `json:"status_code"`
		Message string `json:"status_message"`
	}
	if json.Unmarshal(body, &status) == nil {
		apiErr.Code = status.Code
		apiErr.Message = strings.TrimSpace(status.Message)
	}
	return apiErr
}

// IsAPIError unwraps err into an *APIError when possible.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	dup := *u
	q := dup.Query()
	if q.Has("api_key") {
		q.Set("api_key", "***")
		dup.RawQuery = q.Encode()
	}
	return dup.String()
}

func languageOrDefault(language string) string {
	if trimmed := strings.TrimSpace(language); trimmed != "" {
		return trimmed
	}
	return DefaultLanguage
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	// Relative endpoint paths resolve beneath the base path only when it ends
	// in a slash.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

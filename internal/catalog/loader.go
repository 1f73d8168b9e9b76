package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/marquee/internal/tmdb"
)

// LoaderOptions configure a Loader. Zero values fall back to upstream defaults.
type LoaderOptions struct {
	Language     string
	Page         int
	ImageBaseURL string
	Logger       *zap.Logger
}

// Loader performs the single popular-movies load of a mount.
type Loader struct {
	source tmdb.Fetcher
	opts   LoaderOptions
	logger *zap.Logger
}

// LoadResult is the outcome of a successful load.
type LoadResult struct {
	// ID is the mount ID when ctx came from a Mount, else a fresh UUID.
	ID             string
	Movies         []Movie
	GenresResolved bool
	Elapsed        time.Duration
}

// NewLoader builds a Loader over source.
func NewLoader(source tmdb.Fetcher, opts LoaderOptions) *Loader {
	if opts.Language == "" {
		opts.Language = tmdb.DefaultLanguage
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = tmdb.DefaultImageBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, opts: opts, logger: logger.Named("loader")}
}

// Load fetches the genre list and the popular list, then maps the results.
// A failed genre lookup is logged and tags every record with SentinelGenre;
// any failure of the popular list is logged and returned. Load never retries.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	if l == nil || l.source == nil {
		return LoadResult{}, fmt.Errorf("loader has no source")
	}
	id, ok := LoadIDFromContext(ctx)
	if !ok {
		id = uuid.NewString()
	}
	result := LoadResult{ID: id}
	logger := l.logger.With(zap.String("load_id", result.ID))
	start := time.Now()

	var names map[int]string
	genres, err := l.source.FetchGenres(ctx, l.opts.Language)
	switch {
	case err == nil:
		names = tmdb.GenreNames(genres)
		result.GenresResolved = true
	case ctx.Err() != nil:
		return result, l.fail(logger, fmt.Errorf("fetch genres: %w", err))
	default:
		logger.Warn("genre lookup failed; tagging movies with sentinel genre",
			zap.Error(err),
			zap.String("sentinel", string(SentinelGenre)),
		)
	}

	resp, err := l.source.FetchPopular(ctx, tmdb.PopularQuery{Language: l.opts.Language, Page: l.opts.Page})
	if err != nil {
		return result, l.fail(logger, fmt.Errorf("fetch popular movies: %w", err))
	}
	if resp == nil || resp.Results == nil {
		return result, l.fail(logger, fmt.Errorf("fetch popular movies: %w", tmdb.ErrMissingResults))
	}

	result.Movies = SummarizeAll(resp.Results, l.opts.ImageBaseURL, names)
	result.Elapsed = time.Since(start)
	logger.Info("movies loaded",
		zap.Int("count", len(result.Movies)),
		zap.Bool("genres_resolved", result.GenresResolved),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (l *Loader) fail(logger *zap.Logger, err error) error {
	if errors.Is(err, context.Canceled) {
		logger.Debug("load cancelled", zap.Error(err))
		return err
	}
	logger.Error("movie load failed", zap.Error(err))
	return err
}

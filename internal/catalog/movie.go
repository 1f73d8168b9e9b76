package catalog

import (
	"strings"

	"github.com/five82/marquee/internal/tmdb"
)

// Movie is the normalized summary of one upstream record. Values are never
// modified after Summarize returns them.
type Movie struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Year      string   `json:"year"`
	PosterURL string   `json:"posterUrl"`
	Genres    []string `json:"genres"`
	Overview  string   `json:"overview,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
}

// HasGenre reports whether the record carries label g.
func (m Movie) HasGenre(g Genre) bool {
	for _, name := range m.Genres {
		if name == string(g) {
			return true
		}
	}
	return false
}

// GenreLabel joins the record's genres for display.
func (m Movie) GenreLabel() string {
	return strings.Join(m.Genres, ", ")
}

// Summarize maps an upstream record. A nil names map means the genre lookup
// failed and the record is tagged with SentinelGenre.
func Summarize(r tmdb.MovieResult, imageBase string, names map[int]string) Movie {
	return Movie{
		ID:        r.ID,
		Title:     r.Title,
		Year:      releaseYear(r.ReleaseDate),
		PosterURL: posterURL(imageBase, r.PosterPath),
		Genres:    resolveGenres(r.GenreIDs, names),
		Overview:  strings.TrimSpace(r.Overview),
		Rating:    r.VoteAverage,
	}
}

// SummarizeAll maps results in upstream order.
func SummarizeAll(results []tmdb.MovieResult, imageBase string, names map[int]string) []Movie {
	movies := make([]Movie, 0, len(results))
	for _, r := range results {
		movies = append(movies, Summarize(r, imageBase, names))
	}
	return movies
}

func releaseYear(date string) string {
	runes := []rune(date)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return string(runes)
}

// posterURL concatenates like the upstream image CDN expects. An empty path
// still yields the bare base, which resolves to no image.
func posterURL(base, path string) string {
	if base == "" {
		base = tmdb.DefaultImageBaseURL
	}
	return base + path
}

func resolveGenres(ids []int, names map[int]string) []string {
	if names == nil {
		return []string{string(SentinelGenre)}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			continue
		}
		out = append(out, normalizeUpstreamGenre(name))
	}
	return out
}

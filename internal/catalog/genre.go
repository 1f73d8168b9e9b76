package catalog

import "strings"

// Genre is one of the selectable genre labels.
type Genre string

const (
	GenreAll      Genre = "All"
	GenreAction   Genre = "Action"
	GenreDrama    Genre = "Drama"
	GenreComedy   Genre = "Comedy"
	GenreSciFi    Genre = "Sci-Fi"
	GenreThriller Genre = "Thriller"
)

// SentinelGenre tags records whose real genres could not be resolved.
// Such records only pass the All selection.
const SentinelGenre = GenreAll

var genreOrder = []Genre{GenreAll, GenreAction, GenreDrama, GenreComedy, GenreSciFi, GenreThriller}

// upstreamAliases maps upstream genre names onto labels that spell them
// differently.
var upstreamAliases = map[string]Genre{
	"science fiction": GenreSciFi,
	"sci-fi":          GenreSciFi,
}

// Genres returns the selectable labels in display order.
func Genres() []Genre {
	out := make([]Genre, len(genreOrder))
	copy(out, genreOrder)
	return out
}

// ParseGenre matches a label case-insensitively. Empty input means All.
func ParseGenre(value string) (Genre, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return GenreAll, true
	}
	for _, g := range genreOrder {
		if strings.EqualFold(string(g), trimmed) {
			return g, true
		}
	}
	return GenreAll, false
}

// Next returns the label after g, wrapping around.
func (g Genre) Next() Genre {
	return g.step(1)
}

// Prev returns the label before g, wrapping around.
func (g Genre) Prev() Genre {
	return g.step(-1)
}

func (g Genre) step(delta int) Genre {
	for i, candidate := range genreOrder {
		if candidate == g {
			n := len(genreOrder)
			return genreOrder[((i+delta)%n+n)%n]
		}
	}
	return GenreAll
}

// IsAll reports whether g selects every record. The zero value counts as All.
func (g Genre) IsAll() bool {
	return g == "" || g == GenreAll
}

func (g Genre) String() string {
	if g == "" {
		return string(GenreAll)
	}
	return string(g)
}

// normalizeUpstreamGenre turns an upstream genre name into the label stored
// on a Movie.
func normalizeUpstreamGenre(name string) string {
	trimmed := strings.TrimSpace(name)
	if alias, ok := upstreamAliases[strings.ToLower(trimmed)]; ok {
		return string(alias)
	}
	return trimmed
}

package catalog

import "strings"

// Filter holds the search text and the selected genre.
type Filter struct {
	Search string
	Genre  Genre
}

// Match reports whether m passes both predicates: case-insensitive title
// containment, then genre equality unless the selection is All.
func (f Filter) Match(m Movie) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Search)) {
		return false
	}
	return f.Genre.IsAll() || m.HasGenre(f.Genre)
}

// Visible returns the movies passing f, in their original order.
func Visible(movies []Movie, f Filter) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

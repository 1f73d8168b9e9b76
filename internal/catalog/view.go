package catalog

// Status is the load state of a mount.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

// ViewState is one revision of everything a front end renders from. Every
// With* method returns a new revision and leaves the receiver untouched.
type ViewState struct {
	Revision uint64
	Movies   []Movie
	Filter   Filter
	Status   Status
	Err      error
}

// NewViewState returns the initial revision: no movies, empty search, All.
func NewViewState() ViewState {
	return ViewState{Filter: Filter{Genre: GenreAll}, Status: StatusLoading}
}

// WithSearch returns a revision with new search text.
func (v ViewState) WithSearch(search string) ViewState {
	v.Filter.Search = search
	v.Revision++
	return v
}

// WithGenre returns a revision with a new genre selection.
func (v ViewState) WithGenre(g Genre) ViewState {
	if g == "" {
		g = GenreAll
	}
	v.Filter.Genre = g
	v.Revision++
	return v
}

// WithLoad returns a revision reflecting a load outcome. A failed load keeps
// the previous movies.
func (v ViewState) WithLoad(movies []Movie, status Status, err error) ViewState {
	if status != StatusFailed {
		v.Movies = movies
	}
	v.Status = status
	v.Err = err
	v.Revision++
	return v
}

// Visible derives the records to render.
func (v ViewState) Visible() []Movie {
	return Visible(v.Movies, v.Filter)
}

// Failed reports whether the last load failed.
func (v ViewState) Failed() bool {
	return v.Status == StatusFailed
}

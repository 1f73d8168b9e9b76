package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/marquee/internal/catalog"
)

// Snapshot represents the latest movie list available to the front ends.
type Snapshot struct {
	Movies    []catalog.Movie
	Status    catalog.Status
	LoadID    string
	StartedAt time.Time
	LoadedAt  time.Time
	LastError error
	Revision  uint64
}

// Loaded reports whether a load has completed successfully at least once.
func (s Snapshot) Loaded() bool {
	return !s.LoadedAt.IsZero()
}

// Store coordinates the loader writing and the front ends reading.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin marks a load as in flight. Previous movies stay visible.
func (s *Store) Begin(loadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Status = catalog.StatusLoading
	s.snapshot.LoadID = loadID
	s.snapshot.StartedAt = time.Now()
	s.snapshot.Revision++
}

// Update records a load outcome. When err is non-nil the previous movies are
// kept and the error is recorded for visibility.
func (s *Store) Update(movies []catalog.Movie, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Revision++
	if err != nil {
		s.snapshot.Status = catalog.StatusFailed
		s.snapshot.LastError = err
		return
	}

	s.snapshot.Movies = cloneMovies(movies)
	s.snapshot.Status = catalog.StatusLoaded
	s.snapshot.LastError = nil
	s.snapshot.LoadedAt = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Movies = cloneMovies(s.snapshot.Movies)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// View folds the snapshot into a catalog view state carrying filter.
func (s Snapshot) View(filter catalog.Filter) catalog.ViewState {
	v := catalog.NewViewState()
	v.Movies = s.Movies
	v.Status = s.Status
	v.Err = s.LastError
	return v.WithSearch(filter.Search).WithGenre(filter.Genre)
}

func cloneMovies(movies []catalog.Movie) []catalog.Movie {
	if movies == nil {
		return nil
	}
	dup := make([]catalog.Movie, len(movies))
	for i, m := range movies {
		if m.Genres != nil {
			m.Genres = append([]string(nil), m.Genres...)
		}
		dup[i] = m
	}
	return dup
}

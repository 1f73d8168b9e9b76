// Package state holds the latest movie load for the front ends.
//
// # Overview
//
// The loader goroutine is the single writer. The terminal UI tick and the web
// handlers are concurrent readers. The Store sits between them:
//
//	Loader:                        Front ends:
//	┌────────────────────┐        ┌────────────────────┐
//	│ store.Begin(id)    │        │                    │
//	│ loader.Load(ctx)   │        │ store.Snapshot()   │
//	│ mount.Run(         │───────→│      ↓             │
//	│   store.Update)    │ (mutex)│ derive visible     │
//	└────────────────────┘        └────────────────────┘
//
// # Update Semantics
//
//	// Success: replace the list
//	store.Update(movies, nil)
//	→ snapshot.Movies = movies (cloned)
//	→ snapshot.Status = Loaded
//	→ snapshot.LastError = nil
//
//	// Failure: keep the list, record the error
//	store.Update(nil, err)
//	→ snapshot.Movies = <unchanged>
//	→ snapshot.Status = Failed
//	→ snapshot.LastError = err
//
// Snapshot deep-copies the movie slice and each record's genre slice, so a
// front end may hold a snapshot across renders without locking.
//
// The zero Store is ready to use and reports StatusLoading with no movies.
package state

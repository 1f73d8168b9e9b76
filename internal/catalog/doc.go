// Package catalog holds the movie list core shared by every front end.
//
// # Overview
//
// A Loader performs the one upstream load of a Mount and maps each raw TMDB
// record into a Movie. Front ends keep a ViewState (movies, search text,
// selected genre, load status) and derive the visible records with Visible.
// Derivation is pure: it performs no I/O and never reorders records.
//
// # Genres
//
// Genres are resolved from each record's genre_ids through the upstream genre
// list. When that lookup fails the loader still succeeds and tags every record
// with SentinelGenre, so only the All selection matches anything.
//
// # Mount lifetime
//
//	mount := catalog.NewMount(ctx)
//	defer mount.Close()
//
//	result, err := loader.Load(mount.Context())
//	mount.Run(func() { store.Update(result.Movies, err) })
//
// Close cancels the in-flight request and turns later Run calls into no-ops,
// so a load that resolves after teardown is dropped.
package catalog

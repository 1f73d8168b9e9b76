// Package app is marquee's composition root.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      viper file + env, validated
//	       ├─────> logging.New()      zap, rotated file (+ stdout when serving)
//	       ├─────> tmdb.NewClient()   upstream HTTP client
//	       ├─────> catalog.NewMount() scope of this front end
//	       ├─────> StartLoader()      one background load
//	       └─────> ui.Run() or web.Serve() (blocks)
//
// # Load Lifetime
//
// StartLoader marks the store as loading, runs the load on the mount's
// context and applies the outcome through Mount.Run. When the front end exits
// first, Run closes the mount: the in-flight request is cancelled and any late
// result is discarded instead of reaching the store.
//
// There is no retry. A failed load leaves the store in the failed state with
// whatever movies it already had (none, on first load) and the front ends
// show a "couldn't load movies" notice.
package app

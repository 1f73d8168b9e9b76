// Package config loads marquee's startup configuration.
//
// # Resolution Order
//
// Values are layered, later sources winning:
//
//  1. Built-in defaults
//  2. The TOML file (explicit path, or ~/.config/marquee/config.toml)
//  3. Environment variables with the MARQUEE_ prefix (MARQUEE_LANGUAGE, ...)
//
// The upstream credentials also read TMDB_API_KEY and TMDB_ACCESS_TOKEN. A
// missing config file is not an error.
//
// # TOML Format
//
//	api_key = "..."            # v3 key, sent as ?api_key=
//	access_token = "..."       # v4 read token, sent as a Bearer header
//	base_url = "https://api.themoviedb.org/3"
//	image_base_url = "https://image.tmdb.org/t/p/w500"
//	language = "en-US"
//	page = 1
//	timeout = "10s"
//	log_dir = "~/.local/state/marquee/logs"
//	prefs_path = "~/.config/marquee/prefs.toml"
//
// Every key is optional. Paths get tilde expansion.
//
// # Validation
//
// Load validates the merged result and reports every failing key at once.
// A missing credential passes validation: the load then fails upstream and
// the front ends show the failure instead of refusing to start.
package config

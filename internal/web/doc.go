// Package web serves the movie grid to browsers.
//
// The page is rendered server-side with gomponents. The search input and the
// genre select carry htmx attributes, so each keystroke fetches a fresh /grid
// fragment filtered in-process from the latest store snapshot. No request
// reaches the upstream API. /api/movies exposes the same view as JSON.
package web

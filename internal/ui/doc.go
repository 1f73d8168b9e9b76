// Package ui provides the terminal interface for browsing popular movies.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds the current catalog.ViewState
// and derives the visible grid from it on every search or genre change. The
// movie list itself comes from state.Store, which the program polls until
// the mount's single load settles.
//
// # Package Structure
//
//   - app.go: Model, message routing and the Run entry point
//   - grid.go: card grid rendering, selection and scrolling
//   - header.go: status header, filter bar and command bar
//   - detail.go: movie detail overlay
//   - logs.go: recent log overlay read back from the log file
//   - help.go: key binding overlay
//   - theme.go, style_helpers.go: palettes and background-safe rendering
//
// # Key Bindings
//
//   - /: Focus the search input (enter keeps the text, esc clears it)
//   - tab or ]: Next genre; shift+tab or [: previous genre
//   - h/j/k/l or arrows: Move the selection
//   - enter: Show details for the selected movie
//   - D: Toggle card density; T: cycle themes
//   - L: Show recent log entries
//   - ?: Help; q or ctrl+c: quit
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Store:   store,
//		LogPath: cfg.LogPath(),
//	})
package ui

package ui

import "time"

// Terminal width thresholds for the grid, in columns.
const (
	// LayoutTwoColumnWidth is the minimum width for two cards per row.
	LayoutTwoColumnWidth = 60

	// LayoutThreeColumnWidth is the minimum width for three cards per row.
	LayoutThreeColumnWidth = 90

	// LayoutFourColumnWidth is the minimum width for four cards per row.
	LayoutFourColumnWidth = 120

	// LayoutCompactWidth is the threshold below which the header shortens.
	LayoutCompactWidth = 80
)

// Chrome rows outside the grid: header, command bar, filter bar.
const chromeHeight = 3

// Card heights including borders.
const (
	cardHeightComfortable = 6
	cardHeightCompact     = 3
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI polls the store while loading.
	DefaultUIInterval = 250 * time.Millisecond

	// LogTailLines is how many log entries the log overlay shows.
	LogTailLines = 200
)

// gridColumns returns the number of cards per row for a terminal width.
func gridColumns(width int) int {
	switch {
	case width >= LayoutFourColumnWidth:
		return 4
	case width >= LayoutThreeColumnWidth:
		return 3
	case width >= LayoutTwoColumnWidth:
		return 2
	default:
		return 1
	}
}

// cardWidth returns the outer width of one card, borders included.
func cardWidth(width, columns int) int {
	if columns <= 0 {
		columns = 1
	}
	w := width / columns
	if w < 10 {
		w = 10
	}
	return w
}

// visibleRows returns how many card rows fit below the chrome.
func visibleRows(height, cardHeight int) int {
	rows := (height - chromeHeight) / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// overlaySize returns the outer size of the detail box.
func (m Model) overlaySize() (int, int) {
	w := m.width * 2 / 3
	if w < 40 {
		w = m.width
	}
	if w > 90 {
		w = 90
	}
	h := m.height - 4
	if h > 20 {
		h = 20
	}
	if h < 6 {
		h = m.height
	}
	return w, h
}

// updateDetailViewport fills the detail viewport from the selected movie.
func (m *Model) updateDetailViewport() {
	movie, ok := m.selectedMovie()
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	width := m.detailViewport.Width
	if width < 10 {
		width = 10
	}

	label := func(name string) string {
		return bg.Render(padRight(name, 8), styles.MutedText)
	}

	var b strings.Builder
	b.WriteString(label("Year") + bg.Render(movie.Year, styles.Text))
	b.WriteString("\n")
	genres := movie.GenreLabel()
	if genres == "" {
		genres = "—"
	}
	b.WriteString(label("Genres") + bg.Render(genres, styles.AccentText))
	b.WriteString("\n")
	if movie.Rating > 0 {
		b.WriteString(label("Rating") + bg.Render(fmt.Sprintf("%.1f / 10", movie.Rating), styles.WarningText))
		b.WriteString("\n")
	}
	b.WriteString(label("Poster") + bg.Render(truncateMiddle(movie.PosterURL, width-8), styles.FaintText))
	b.WriteString("\n\n")

	overview := movie.Overview
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color(m.theme.Text)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Render(overview))

	m.detailViewport.SetContent(b.String())
	m.detailViewport.GotoTop()
}

// renderDetail renders the selected movie in a titled box over the grid.
func (m Model) renderDetail() string {
	movie, ok := m.selectedMovie()
	if !ok {
		return m.renderMain()
	}
	w, h := m.overlaySize()
	box := m.renderTitledBox(movie.Title, m.detailViewport.View(), w, h)
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

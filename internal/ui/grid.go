package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/prefs"
)

// emptyGridText is shown in place of the grid when nothing matches.
const emptyGridText = "No movies found."

// handleGridKey moves the card selection.
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.visible)
	if count == 0 {
		return m, nil
	}
	cols := gridColumns(m.width)

	switch {
	case key.Matches(msg, m.keys.Right):
		m.selected++
	case key.Matches(msg, m.keys.Left):
		m.selected--
	case key.Matches(msg, m.keys.Down):
		if m.selected+cols < count {
			m.selected += cols
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected-cols >= 0 {
			m.selected -= cols
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	default:
		return m, nil
	}
	m.selected = clamp(m.selected, 0, count-1)
	m.ensureSelectionVisible()
	return m, nil
}

// ensureSelectionVisible scrolls the grid so the selected card's row is on
// screen.
func (m *Model) ensureSelectionVisible() {
	if m.width == 0 || m.height == 0 {
		return
	}
	cols := gridColumns(m.width)
	rows := visibleRows(m.height, m.cardHeight())
	row := m.selected / cols
	switch {
	case row < m.rowOffset:
		m.rowOffset = row
	case row >= m.rowOffset+rows:
		m.rowOffset = row - rows + 1
	}
	totalRows := (len(m.visible) + cols - 1) / cols
	m.rowOffset = clamp(m.rowOffset, 0, totalRows-rows)
}

func (m Model) cardHeight() int {
	if m.density == prefs.DensityCompact {
		return cardHeightCompact
	}
	return cardHeightComfortable
}

// renderGrid renders the visible window of cards, or the empty placeholder.
func (m Model) renderGrid(height int) string {
	if len(m.visible) == 0 {
		return m.renderEmpty(height)
	}

	cols := gridColumns(m.width)
	width := cardWidth(m.width, cols)
	rows := visibleRows(m.height, m.cardHeight())

	var lines []string
	for r := m.rowOffset; r < m.rowOffset+rows; r++ {
		start := r * cols
		if start >= len(m.visible) {
			break
		}
		end := start + cols
		if end > len(m.visible) {
			end = len(m.visible)
		}
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(m.visible[i], width, i == m.selected))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return m.theme.Styles().Background.
		Width(m.width).
		Height(height).
		Render(strings.Join(lines, "\n"))
}

// renderCard renders one movie: title and year, plus genres and poster in
// comfortable density.
func (m Model) renderCard(movie catalog.Movie, width int, selected bool) string {
	bgColor := m.theme.SurfaceAlt
	borderColor := m.theme.Border
	if selected {
		bgColor = m.theme.SelectionBg
		borderColor = m.theme.BorderFocus
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	title := styles.Text.Bold(true)
	if selected {
		title = styles.Selected.Bold(true)
	}

	var body []string
	if m.density == prefs.DensityCompact {
		line := bg.Render(truncate(movie.Title, inner-6), title)
		if movie.Year != "" {
			line += bg.Space() + bg.Render(movie.Year, styles.MutedText)
		}
		body = append(body, line)
	} else {
		body = append(body,
			bg.Render(truncate(movie.Title, inner), title),
			bg.Render(movie.Year, styles.MutedText),
			bg.Render(truncate(movie.GenreLabel(), inner), styles.FaintText),
			bg.Render(truncateMiddle(posterName(movie.PosterURL), inner), styles.FaintText),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(bgColor)).
		Width(inner).
		Render(strings.Join(body, "\n"))
}

// renderEmpty renders the single full-width placeholder.
func (m Model) renderEmpty(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	return lipgloss.Place(
		m.width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		styles.MutedText.Render(emptyGridText),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

// posterName returns the image file name of a poster URL, or a marker when
// the record had no poster path.
func posterName(url string) string {
	idx := strings.LastIndex(url, "/")
	name := url[idx+1:]
	if name == "" || !strings.Contains(name, ".") {
		return "no poster"
	}
	return name
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/logging"
)

// updateLogViewport refreshes the log overlay content and follows the tail.
func (m *Model) updateLogViewport() {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	width := m.logViewport.Width

	var lines []string
	switch {
	case m.logErr != nil:
		lines = append(lines, styles.DangerText.Render("Unable to read log: "+m.logErr.Error()))
	case len(m.logEntries) == 0:
		lines = append(lines, styles.MutedText.Render("No log entries yet."))
	default:
		for _, entry := range m.logEntries {
			lines = append(lines, m.formatLogEntry(entry, styles, width))
		}
	}

	m.logViewport.SetContent(strings.Join(lines, "\n"))
	m.logViewport.GotoBottom()
}

func (m Model) formatLogEntry(entry logging.Entry, styles Styles, width int) string {
	line := truncate(entry.String(), width)
	switch strings.ToLower(entry.Level) {
	case "error", "fatal", "panic", "dpanic":
		return styles.DangerText.Render(line)
	case "warn":
		return styles.WarningText.Render(line)
	case "debug":
		return styles.FaintText.Render(line)
	default:
		return styles.Text.Render(line)
	}
}

// renderLogs renders the recent log entries full screen.
func (m Model) renderLogs() string {
	title := "Logs"
	if m.logPath != "" {
		title += " · " + truncateMiddle(m.logPath, m.width-16)
	}
	box := m.renderTitledBox(title, m.logViewport.View(), m.width, m.height)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Render(box)
}

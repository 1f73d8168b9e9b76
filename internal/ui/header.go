package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/tmdb"
)

// renderMain renders header, filter bar, grid and command bar.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderGrid(m.height - chromeHeight))
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// renderHeader renders the logo and load status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("marquee", styles.Logo)}

	switch m.view.Status {
	case catalog.StatusLoading:
		parts = append(parts,
			m.spinner.View()+bg.Space()+
				bg.Render("Loading popular movies...", styles.WarningText.Bold(true)))
	case catalog.StatusFailed:
		parts = append(parts,
			bg.Render("Couldn't load movies", styles.DangerText),
			bg.Render(classifyLoadError(m.view.Err), styles.DangerText))
		if m.width >= LayoutCompactWidth && m.logPath != "" {
			parts = append(parts,
				bg.Render("logs", styles.FaintText)+bg.Space()+
					bg.Render(truncateMiddle(m.logPath, 40), styles.MutedText))
		}
	default:
		parts = append(parts, bg.Render("●", styles.SuccessText))
	}

	total := len(m.view.Movies)
	shown := len(m.visible)
	if m.view.Status != catalog.StatusLoading {
		if shown == total {
			parts = append(parts, bg.Render(fmt.Sprintf("%d movies", total), styles.Text))
		} else {
			parts = append(parts,
				bg.Render("showing", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d of %d", shown, total), styles.Text))
		}
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderFilterBar renders the genre selector and the search input.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	chips := make([]string, 0, len(catalog.Genres()))
	for _, g := range catalog.Genres() {
		if g == m.view.Filter.Genre {
			chips = append(chips, styles.GenreChip(g).Bold(true).Render(g.String()))
			continue
		}
		chips = append(chips, bg.Render(g.String(), styles.MutedText))
	}
	genres := bg.Join(chips, " ")

	var search string
	switch {
	case m.searching:
		search = m.search.View()
	case m.view.Filter.Search != "":
		search = bg.Render("/"+truncate(m.view.Filter.Search, 24), styles.AccentText)
	default:
		search = bg.Render("/ to search", styles.FaintText)
	}

	return styles.Header.Width(m.width).Render(genres + bg.Spaces(3) + search)
}

// renderCommandBar renders key hints for the current mode.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.searching {
		commands = []cmd{
			{"enter", "Keep"},
			{"esc", "Clear"},
		}
	} else {
		density := "Compact"
		if m.density == prefs.DensityCompact {
			density = "Comfortable"
		}
		commands = []cmd{
			{"/", "Search"},
			{"tab", "Genre"},
			{"hjkl", "Move"},
			{"enter", "Details"},
			{"D", density},
			{"L", "Logs"},
			{"?", "More"},
			{"q", "Quit"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// classifyLoadError returns a short description of a failed load.
func classifyLoadError(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := tmdb.IsAPIError(err); ok {
		switch {
		case apiErr.Unauthorized():
			return "INVALID API KEY"
		case apiErr.RateLimited():
			return "RATE LIMITED"
		default:
			return fmt.Sprintf("HTTP %d", apiErr.HTTPStatus)
		}
	}
	if errors.Is(err, tmdb.ErrMissingResults) {
		return "NO RESULTS (CHECK API KEY)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	case strings.Contains(msg, "decode response"):
		return "BAD RESPONSE"
	default:
		return "ERROR"
	}
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, innerWidth-4)
	titleLen := lipgloss.Width(title)
	leftPad := (innerWidth - titleLen - 2) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := innerWidth - titleLen - 2 - leftPad
	if rightPad < 0 {
		rightPad = 0
	}

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				bg.FillLine(line, innerWidth)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/catalog"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 || names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v", names)
	}
	names[0] = "changed"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatal("ThemeNames should return a copy")
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want wrap", got)
	}
	if got := NextTheme("unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(unknown) = %q", got)
	}
}

func TestGetThemeDefaults(t *testing.T) {
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope) = %q", got)
	}
}

func TestThemesColorEveryGenre(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, g := range catalog.Genres() {
			if th.GenreColors[g] == "" {
				t.Errorf("%s has no color for %s", name, g)
			}
		}
	}
}

func TestTruncateHelpers(t *testing.T) {
	if got := truncate("Mad Max: Fury Road", 10); got != "Mad Max..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncateMiddle("abcdefghij", 5); got != "ab…ij" {
		t.Fatalf("truncateMiddle = %q", got)
	}
	if got := clamp(5, 0, -1); got != 0 {
		t.Fatalf("clamp with empty range = %d", got)
	}
}

func TestSelectedStyleUsesSelectionColors(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		sel := th.Styles().WithBackground(th.SelectionBg).Selected
		if sel.GetForeground() != lipgloss.Color(th.SelectionText) {
			t.Errorf("%s Selected foreground = %v, want %s", name, sel.GetForeground(), th.SelectionText)
		}
		if sel.GetBackground() != lipgloss.Color(th.SelectionBg) {
			t.Errorf("%s Selected background = %v, want %s", name, sel.GetBackground(), th.SelectionBg)
		}
	}
}

func TestFillLinePadsToWidth(t *testing.T) {
	bg := NewBgStyle("#000000")
	if got := lipgloss.Width(bg.FillLine("abc", 12)); got != 12 {
		t.Fatalf("FillLine width = %d, want 12", got)
	}
}

func TestGridFillsHeight(t *testing.T) {
	m := loadedModel(t)
	if got := lipgloss.Height(m.renderGrid(20)); got != 20 {
		t.Fatalf("renderGrid height = %d, want 20", got)
	}
}

func TestHelpListsThemes(t *testing.T) {
	m := loadedModel(t)
	m = typeRunes(m, "?")
	view := stripANSI(m.View())
	if !strings.Contains(view, "Themes: Nightfox, Kanagawa, Slate") {
		t.Fatalf("help view missing theme list:\n%s", view)
	}
}

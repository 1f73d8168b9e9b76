package ui

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func sampleMovies() []catalog.Movie {
	return []catalog.Movie{
		{ID: 1, Title: "Dune: Part Two", Year: "2024", Genres: []string{"Sci-Fi", "Action"}},
		{ID: 2, Title: "Heat", Year: "1995", Genres: []string{"Thriller", "Drama"}},
		{ID: 3, Title: "Superbad", Year: "2007", Genres: []string{"Comedy"}},
		{ID: 4, Title: "Dune", Year: "2021", Genres: []string{"Sci-Fi"}, Overview: "Paul travels to Arrakis."},
		{ID: 5, Title: "John Wick", Year: "2014", Genres: []string{"Action", "Thriller"}},
		{ID: 6, Title: "Whiplash", Year: "2014", Genres: []string{"Drama"}},
		{ID: 7, Title: "Arrival", Year: "2016", Genres: []string{"Sci-Fi", "Drama"}},
	}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{})
	m.applySnapshot(state.Snapshot{Movies: sampleMovies(), Status: catalog.StatusLoaded, Revision: 1})
	return resize(m, 100, 40)
}

func resize(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func titles(movies []catalog.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, mv := range movies {
		out = append(out, mv.Title)
	}
	return out
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestSearchFiltersWhileTyping(t *testing.T) {
	m := loadedModel(t)
	m = typeRunes(m, "/")
	if !m.searching {
		t.Fatal("expected search input to be focused")
	}

	m = typeRunes(m, "DU")
	got := titles(m.visible)
	if len(got) != 2 || got[0] != "Dune: Part Two" || got[1] != "Dune" {
		t.Fatalf("visible = %v, want both Dune titles in order", got)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.view.Filter.Search != "D" {
		t.Fatalf("search = %q, want D", m.view.Filter.Search)
	}
}

func TestSearchCapturesCommandKeys(t *testing.T) {
	m := loadedModel(t)
	m = typeRunes(m, "/q")
	if !m.searching || m.view.Filter.Search != "q" {
		t.Fatalf("searching=%v search=%q, want q typed into search", m.searching, m.view.Filter.Search)
	}
}

func TestSearchEnterKeepsEscClears(t *testing.T) {
	m := loadedModel(t)
	m = typeRunes(m, "/heat")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching {
		t.Fatal("enter should leave search mode")
	}
	if len(m.visible) != 1 || m.visible[0].Title != "Heat" {
		t.Fatalf("visible = %v, want [Heat]", titles(m.visible))
	}

	m = typeRunes(m, "/")
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || m.view.Filter.Search != "" || m.search.Value() != "" {
		t.Fatalf("esc should clear search; got %q", m.view.Filter.Search)
	}
	if len(m.visible) != len(sampleMovies()) {
		t.Fatalf("visible = %d, want all movies", len(m.visible))
	}
}

func TestEscClearsKeptSearch(t *testing.T) {
	m := loadedModel(t)
	m = typeRunes(m, "/heat")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view.Filter.Search != "" || len(m.visible) != len(sampleMovies()) {
		t.Fatalf("search = %q visible = %d, want cleared", m.view.Filter.Search, len(m.visible))
	}
}

func TestGenreCycle(t *testing.T) {
	m := loadedModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view.Filter.Genre != catalog.GenreAction {
		t.Fatalf("genre = %v, want Action", m.view.Filter.Genre)
	}
	got := titles(m.visible)
	if len(got) != 2 || got[0] != "Dune: Part Two" || got[1] != "John Wick" {
		t.Fatalf("Action visible = %v", got)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.view.Filter.Genre != catalog.GenreThriller {
		t.Fatalf("genre = %v, want Thriller after wrapping back", m.view.Filter.Genre)
	}

	m = typeRunes(m, "]")
	if m.view.Filter.Genre != catalog.GenreAll {
		t.Fatalf("genre = %v, want All after wrapping forward", m.view.Filter.Genre)
	}
}

func TestSearchAndGenreCombine(t *testing.T) {
	m := loadedModel(t)
	m = typeRunes(m, "/dune")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 4; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.view.Filter.Genre != catalog.GenreSciFi {
		t.Fatalf("genre = %v, want Sci-Fi", m.view.Filter.Genre)
	}
	if len(m.visible) != 2 {
		t.Fatalf("visible = %v, want two Dune titles", titles(m.visible))
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if len(m.visible) != 0 {
		t.Fatalf("visible = %v, want none for Dune + Thriller", titles(m.visible))
	}
	if !strings.Contains(stripANSI(m.View()), emptyGridText) {
		t.Fatal("expected empty grid placeholder")
	}
}

func TestSnapshotMessageLoadsGrid(t *testing.T) {
	store := &state.Store{}
	store.Begin("mount-1")

	m := resize(New(Options{Store: store}), 100, 40)
	m = applyStore(m, store)
	if !m.loading() {
		t.Fatal("expected loading before the store settles")
	}
	if !strings.Contains(stripANSI(m.View()), "Loading popular movies...") {
		t.Fatal("expected loading header")
	}

	store.Update(sampleMovies(), nil)
	m = applyStore(m, store)
	if m.loading() || len(m.visible) != len(sampleMovies()) {
		t.Fatalf("status=%v visible=%d, want loaded grid", m.view.Status, len(m.visible))
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "7 movies") || !strings.Contains(view, "Whiplash") {
		t.Fatalf("view missing count or titles:\n%s", view)
	}
}

func applyStore(m Model, store *state.Store) Model {
	next, _ := m.Update(fetchSnapshotCmd(store)())
	return next.(Model)
}

func TestFailedLoadShowsNoticeAndEmptyGrid(t *testing.T) {
	store := &state.Store{}
	store.Begin("mount-1")
	store.Update(nil, &tmdb.APIError{Path: "/movie/popular", HTTPStatus: 401, Code: 7})

	m := applyStore(resize(New(Options{Store: store}), 100, 40), store)
	view := stripANSI(m.View())
	for _, want := range []string{"Couldn't load movies", "INVALID API KEY", emptyGridText} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptySuccessShowsPlaceholder(t *testing.T) {
	m := New(Options{})
	m.applySnapshot(state.Snapshot{Movies: []catalog.Movie{}, Status: catalog.StatusLoaded, Revision: 1})
	m = resize(m, 80, 24)
	view := stripANSI(m.View())
	if !strings.Contains(view, emptyGridText) || strings.Contains(view, "Couldn't load movies") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestApplySnapshotSkipsSameRevision(t *testing.T) {
	m := loadedModel(t)
	m.applySnapshot(state.Snapshot{Status: catalog.StatusLoaded, Revision: 1})
	if len(m.view.Movies) != len(sampleMovies()) {
		t.Fatal("same revision should not replace movies")
	}
}

func TestDetailOverlay(t *testing.T) {
	m := loadedModel(t)
	m = typeRunes(m, "/arrakis")
	// Overview text is not searched.
	if len(m.visible) != 0 {
		t.Fatalf("visible = %v, want none", titles(m.visible))
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	m = typeRunes(m, "lll")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.overlay != overlayDetail {
		t.Fatalf("overlay = %v, want detail", m.overlay)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "Dune") || !strings.Contains(view, "Arrakis") {
		t.Fatalf("detail view missing movie:\n%s", view)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.overlay != overlayNone {
		t.Fatal("esc should close detail")
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m := loadedModel(t)
	m = typeRunes(m, "?")
	if m.overlay != overlayHelp || !strings.Contains(stripANSI(m.View()), "Keyboard Shortcuts") {
		t.Fatal("expected help overlay")
	}
	m = typeRunes(m, "x")
	if m.overlay != overlayNone {
		t.Fatal("any key should close help")
	}
}

func TestLogsOverlayReadsLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.log")
	line := `{"level":"info","timestamp":"2026-01-02T03:04:05.000Z","logger":"loader","msg":"movies loaded","count":20}`
	if err := os.WriteFile(path, []byte(line+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(Options{LogPath: path})
	m = resize(m, 100, 30)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	m = next.(Model)
	if m.overlay != overlayLogs || cmd == nil {
		t.Fatalf("overlay = %v, want logs with read command", m.overlay)
	}
	next, _ = m.Update(cmd())
	m = next.(Model)
	if len(m.logEntries) != 1 || m.logErr != nil {
		t.Fatalf("entries = %#v err = %v", m.logEntries, m.logErr)
	}
	if !strings.Contains(stripANSI(m.View()), "movies loaded") {
		t.Fatal("log overlay missing entry")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.overlay != overlayNone {
		t.Fatal("esc should close logs")
	}
}

func TestThemeAndDensityPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{PrefsPath: path, ThemeName: "Nightfox"})
	m = resize(m, 100, 30)

	m = typeRunes(m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	m = typeRunes(m, "D")
	if m.density != prefs.DensityCompact {
		t.Fatalf("density = %q, want compact", m.density)
	}

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if saved.Theme != "Kanagawa" || saved.Density != prefs.DensityCompact {
		t.Fatalf("saved prefs = %#v", saved)
	}
}

func TestQuitKeys(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}

	m = typeRunes(m, "/")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit even while searching")
	}
}

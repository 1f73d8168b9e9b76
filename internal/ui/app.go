package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
)

// overlay is the modal currently covering the grid.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayDetail
	overlayLogs
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	ThemeName string
	Density   prefs.Density
	PrefsPath string
	LogPath   string
	Logger    *zap.Logger
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	prefsPath string
	logPath   string
	logger    *zap.Logger
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme   Theme
	density prefs.Density
	width   int
	height  int
	ready   bool
	overlay overlay

	// Data state
	snapshot state.Snapshot
	view     catalog.ViewState
	visible  []catalog.Movie

	// Grid state
	selected  int
	rowOffset int

	// Search input
	search    textinput.Model
	searching bool

	spinner spinner.Model

	detailViewport viewport.Model
	logViewport    viewport.Model
	logEntries     []logging.Entry
	logErr         error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	density := opts.Density
	if density == "" {
		density = prefs.DensityComfortable
	}

	theme := GetTheme(opts.ThemeName)

	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Prompt = "/ "
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	view := catalog.NewViewState()
	return Model{
		ctx:       ctx,
		store:     opts.Store,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		logger:    logger.Named("ui"),
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		theme:     theme,
		density:   density,
		view:      view,
		visible:   view.Visible(),
		search:    ti,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewports()
		m.ensureSelectionVisible()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logTailMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayDetail:
		return m.renderDetail()
	case overlayLogs:
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey routes keyboard input to the active overlay, the search input or
// the grid.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp:
		// Any key closes help
		m.overlay = overlayNone
		return m, nil
	case overlayDetail:
		return m.handleDetailKey(msg)
	case overlayLogs:
		return m.handleLogsKey(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDensity):
		m.density = m.density.Toggle()
		m.ensureSelectionVisible()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ShowLogs):
		m.overlay = overlayLogs
		return m, readLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Escape):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.setSearch("")
		}
		return m, nil

	case key.Matches(msg, m.keys.NextGenre):
		m.setGenre(m.view.Filter.Genre.Next())
		return m, nil

	case key.Matches(msg, m.keys.PrevGenre):
		m.setGenre(m.view.Filter.Genre.Prev())
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if _, ok := m.selectedMovie(); ok {
			m.overlay = overlayDetail
			m.updateDetailViewport()
		}
		return m, nil
	}

	return m.handleGridKey(msg)
}

// handleSearchKey edits the search text. Every change re-derives the grid.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.setSearch("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.view.Filter.Search {
		m.setSearch(m.search.Value())
	}
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.overlay = overlayNone
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ShowLogs), key.Matches(msg, m.keys.Quit):
		m.overlay = overlayNone
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// handleTick polls the store until the load settles.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.store == nil || m.ctx.Err() != nil {
		return m, nil
	}
	cmds := []tea.Cmd{fetchSnapshotCmd(m.store)}
	if m.loading() {
		cmds = append(cmds, tickCmd(m.pollTick))
	}
	return m, tea.Batch(cmds...)
}

// applySnapshot folds a store snapshot into the view state.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.Revision == m.snapshot.Revision && m.snapshot.Revision != 0 {
		return
	}
	wasLoading := m.loading()
	m.snapshot = snap
	m.view = m.view.WithLoad(snap.Movies, snap.Status, snap.LastError)
	m.refreshVisible()
	if wasLoading && snap.Status != catalog.StatusLoading {
		m.logger.Debug("load settled",
			zap.String("status", snap.Status.String()),
			zap.Int("movies", len(snap.Movies)),
		)
	}
}

func (m *Model) setSearch(text string) {
	m.view = m.view.WithSearch(text)
	m.selected = 0
	m.rowOffset = 0
	m.refreshVisible()
}

func (m *Model) setGenre(g catalog.Genre) {
	m.view = m.view.WithGenre(g)
	m.selected = 0
	m.rowOffset = 0
	m.refreshVisible()
}

func (m *Model) refreshVisible() {
	m.visible = m.view.Visible()
	m.selected = clamp(m.selected, 0, len(m.visible)-1)
	m.ensureSelectionVisible()
}

func (m Model) loading() bool {
	return m.view.Status == catalog.StatusLoading
}

func (m Model) selectedMovie() (catalog.Movie, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return catalog.Movie{}, false
	}
	return m.visible[m.selected], true
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Density: m.density}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

func (m *Model) resizeViewports() {
	w, h := m.overlaySize()
	m.detailViewport.Width = w - 4
	m.detailViewport.Height = h - 2
	m.logViewport.Width = m.width - 2
	m.logViewport.Height = m.height - 2
	if m.overlay == overlayDetail {
		m.updateDetailViewport()
	}
	m.updateLogViewport()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logTailMsg struct {
	entries []logging.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logTailMsg{}
		}
		entries, err := logging.Tail(path, LogTailLines)
		return logTailMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

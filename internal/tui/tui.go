// internal/tui/tui.go
// Package tui provides the interactive leaderboard viewer.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mwiater/arenaboard/internal/appconfig"
	"github.com/mwiater/arenaboard/internal/arena"
	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/mwiater/arenaboard/internal/logging"
	"github.com/mwiater/arenaboard/internal/render"
	"github.com/mwiater/arenaboard/internal/trace"
	"github.com/mwiater/arenaboard/internal/util"
)

// Loader fetches the startup dataset.
type Loader interface {
	Load(ctx context.Context) (leaderboard.Dataset, error)
}

// TraceFetcher fetches one model's outputs for a 1-based task.
type TraceFetcher interface {
	Trace(ctx context.Context, competition, model string, task int) (trace.Record, error)
}

var errNoCompetitions = errors.New("arena returned no competitions")

const (
	noTraceInAggregate   = "Traces are not available in the aggregate view."
	noTraceInSecondary   = "Close the token and cost view to open traces."
	noSecondaryAggregate = "Token and cost stats are not available in the aggregate view."
)

// viewState represents the current screen of the viewer.
type viewState int

const (
	// viewLoading waits for the startup fetches.
	viewLoading viewState = iota
	// viewBoard shows the leaderboard.
	viewBoard
	// viewFailed shows a fatal startup error.
	viewFailed
)

// model is the Bubble Tea model of the viewer.
type model struct {
	ctx     context.Context
	config  *appconfig.Config
	loader  Loader
	fetcher TraceFetcher

	state   viewState
	err     error
	dataset leaderboard.Dataset
	tabs    []string
	active  int

	table     leaderboard.Table
	tableErr  error
	secondary bool
	cursor    render.Cursor
	status    string

	selection    *Selection
	pending      string
	record       *trace.Record
	traceFailed  bool
	traceLoading bool

	keys          keyMap
	help          help.Model
	spinner       spinner.Model
	viewport      viewport.Model
	width, height int
}

// initialModel creates the viewer in its loading state.
func initialModel(ctx context.Context, cfg *appconfig.Config, loader Loader, fetcher TraceFetcher) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &model{
		ctx:      ctx,
		config:   cfg,
		loader:   loader,
		fetcher:  fetcher,
		state:    viewLoading,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		viewport: viewport.New(100, 12),
	}
}

// datasetMsg carries the result of the startup fetches.
type datasetMsg struct{ dataset leaderboard.Dataset }

// datasetErr reports a failed startup fetch.
type datasetErr struct{ error }

// traceMsg carries a trace tagged with the request that asked for it.
type traceMsg struct {
	tag    string
	record trace.Record
}

// traceFetchErr reports a failed trace request.
type traceFetchErr struct {
	tag string
	err error
}

// loadCmd performs the startup fetches.
func loadCmd(ctx context.Context, loader Loader) tea.Cmd {
	return func() tea.Msg {
		dataset, err := loader.Load(ctx)
		if err != nil {
			return datasetErr{error: err}
		}
		return datasetMsg{dataset: dataset}
	}
}

// fetchTraceCmd requests the trace for sel and tags the response.
func fetchTraceCmd(ctx context.Context, fetcher TraceFetcher, tag string, sel Selection) tea.Cmd {
	return func() tea.Msg {
		rec, err := fetcher.Trace(ctx, sel.Competition, sel.Model, sel.Task)
		if err != nil {
			return traceFetchErr{tag: tag, err: err}
		}
		return traceMsg{tag: tag, record: rec}
	}
}

// Init starts the spinner and the startup fetches.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.loader))
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state == viewBoard {
			return m, m.handleKey(msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = panelHeight(msg.Height)
		m.refreshPanel()
		return m, nil

	case datasetMsg:
		m.dataset = msg.dataset
		m.tabs = m.dataset.Competitions()
		if len(m.tabs) == 0 {
			m.state = viewFailed
			m.err = errNoCompetitions
			return m, nil
		}
		m.active = indexOf(m.tabs, m.dataset.DefaultCompetition(m.config.DefaultCompetition))
		m.state = viewBoard
		m.rebuild()
		return m, nil

	case datasetErr:
		logging.LogEvent("startup failed: %v", msg.error)
		m.state = viewFailed
		m.err = msg.error
		return m, nil

	case traceMsg:
		if msg.tag != m.pending {
			logging.LogEvent("dropping stale trace response %s", msg.tag)
			return m, nil
		}
		rec := msg.record
		m.record = &rec
		m.pending = ""
		m.traceLoading = false
		m.refreshPanel()
		m.viewport.GotoTop()
		return m, nil

	case traceFetchErr:
		if msg.tag != m.pending {
			logging.LogEvent("dropping stale trace error %s: %v", msg.tag, msg.err)
			return m, nil
		}
		logging.LogEvent("trace request failed: %v", msg.err)
		m.pending = ""
		m.traceLoading = false
		m.traceFailed = true
		m.refreshPanel()
		return m, nil

	case spinner.TickMsg:
		if m.state != viewLoading && !m.traceLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshPanel()
		return m, cmd
	}

	return m, nil
}

// handleKey applies a key press on the board.
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, m.keys.Close):
		m.closePanel()
		m.status = ""
	case key.Matches(msg, m.keys.Secondary):
		m.toggleSecondary()
	case key.Matches(msg, m.keys.Open):
		return m.openTrace()
	case key.Matches(msg, m.keys.PrevRun):
		m.shiftRun(-1)
	case key.Matches(msg, m.keys.NextRun):
		m.shiftRun(1)
	case key.Matches(msg, m.keys.Criterion):
		if m.selection != nil && m.record != nil {
			*m.selection = m.selection.nextCriterion(*m.record)
			m.refreshPanel()
		}
	case key.Matches(msg, m.keys.Up, m.keys.Down):
		if m.selection != nil {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		}
		if key.Matches(msg, m.keys.Up) {
			m.move(-1, 0)
		} else {
			m.move(1, 0)
		}
	case key.Matches(msg, m.keys.Left):
		if m.selection == nil {
			m.move(0, -1)
		}
	case key.Matches(msg, m.keys.Right):
		if m.selection == nil {
			m.move(0, 1)
		}
	}
	return nil
}

// current returns the id of the active competition.
func (m *model) current() string {
	if len(m.tabs) == 0 {
		return ""
	}
	return m.tabs[m.active]
}

func (m *model) switchTab(delta int) {
	n := len(m.tabs)
	if n == 0 {
		return
	}
	m.active = (m.active + delta + n) % n
	m.secondary = false
	m.status = ""
	m.closePanel()
	m.cursor = render.Cursor{}
	m.rebuild()
}

func (m *model) toggleSecondary() {
	if m.dataset.IsAggregate(m.current()) {
		m.status = noSecondaryAggregate
		return
	}
	m.secondary = !m.secondary
	m.status = ""
	m.closePanel()
	m.cursor = render.Cursor{}
	m.rebuild()
}

// rebuild recomputes the visible table from the dataset.
func (m *model) rebuild() {
	id := m.current()
	if m.secondary {
		m.table, m.tableErr = leaderboard.BuildSecondaryTable(m.dataset, id)
	} else {
		m.table, m.tableErr = leaderboard.BuildCompetitionTable(m.dataset, id)
	}
	if m.tableErr != nil {
		logging.LogEvent("table %q: %v", id, m.tableErr)
	}
	m.move(0, 0)
}

// move shifts the cell cursor, keeping it inside the table.
func (m *model) move(dRow, dCol int) {
	m.cursor.Row = util.Clamp(m.cursor.Row+dRow, 0, len(m.table.Rows)-1)
	m.cursor.Col = util.Clamp(m.cursor.Col+dCol, 0, len(m.table.Columns)-1)
}

// openTrace starts a trace request for the cell under the cursor. The
// request is tagged so that a response for an older selection is ignored.
func (m *model) openTrace() tea.Cmd {
	if m.tableErr != nil || len(m.table.Rows) == 0 || len(m.table.Columns) == 0 {
		return nil
	}
	if m.table.Aggregate {
		m.status = noTraceInAggregate
		return nil
	}
	if m.table.Secondary {
		m.status = noTraceInSecondary
		return nil
	}
	task, ok := m.table.Columns[m.cursor.Col].Task()
	if !ok {
		return nil
	}

	sel := Selection{
		Competition: m.table.Competition,
		Model:       m.table.Rows[m.cursor.Row].Model,
		Task:        task,
	}
	tag := uuid.NewString()
	m.selection = &sel
	m.pending = tag
	m.record = nil
	m.traceFailed = false
	m.traceLoading = true
	m.status = ""
	m.refreshPanel()
	return tea.Batch(m.spinner.Tick, fetchTraceCmd(m.ctx, m.fetcher, tag, sel))
}

func (m *model) shiftRun(delta int) {
	if m.selection == nil || m.record == nil {
		return
	}
	*m.selection = m.selection.nextRun(*m.record, delta)
	m.refreshPanel()
}

func (m *model) closePanel() {
	m.selection = nil
	m.pending = ""
	m.record = nil
	m.traceLoading = false
	m.traceFailed = false
}

// refreshPanel re-renders the trace panel into the viewport.
func (m *model) refreshPanel() {
	if m.selection == nil {
		m.viewport.SetContent("")
		return
	}
	sel := *m.selection
	heading := trace.Heading(m.dataset.Info[sel.Competition], sel.Model, sel.Task)

	var content string
	switch {
	case m.traceFailed:
		content = trace.RenderError(heading)
	case m.traceLoading || m.record == nil:
		content = trace.RenderLoading(heading, m.spinner.View())
	default:
		content = trace.Render(heading, *m.record, trace.Options{
			Run:       sel.Run,
			Criterion: sel.Criterion,
			Width:     m.viewport.Width,
		})
	}
	m.viewport.SetContent(content)
}

func panelHeight(total int) int {
	h := total / 2
	if h < 5 {
		return 5
	}
	return h
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}

// StartGUI runs the interactive viewer against the configured arena API.
func StartGUI(ctx context.Context, cfg *appconfig.Config) error {
	if cfg == nil {
		return errors.New("configuration is not loaded")
	}
	f, err := tea.LogToFile(cfg.LogFilePath(), "debug")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	client := arena.NewClient(*cfg, nil)
	m := initialModel(ctx, cfg, client, client)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

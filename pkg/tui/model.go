// Package tui is the terminal front end: a bubbletea program that feeds
// keys and mouse gestures to an editor.Editor and paints its project.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/editor"
)

// Store is the persistence the editor screen needs.
type Store interface {
	editor.Persistence
	List(ctx context.Context) []*chart.Project
	Delete(ctx context.Context, id string) error
}

type Options struct {
	// StartMenu opens on the project picker when no project is loaded.
	StartMenu bool
	// Confirmations asks before quitting, overwriting and removing.
	Confirmations bool
	// Autosave is the quiet period before a dirty project is saved; zero
	// disables it.
	Autosave time.Duration
	DarkMode bool
	// ChartType and Settings seed new projects.
	ChartType chart.ChartType
	Settings  chart.Settings
	// ExportDir is the default directory offered for exports.
	ExportDir string
	Logger    *slog.Logger
}

// TerminalViewport is the editor viewport for a character grid, where one
// cell is two columns wide and one line high.
func TerminalViewport() editor.Viewport {
	return editor.Viewport{Zoom: 1, CellWidth: termCellWidth, CellHeight: termCellHeight, Snap: true}
}

type autosaveMsg struct {
	revision uint64
}

type Model struct {
	ctx   context.Context
	ed    *editor.Editor
	store Store
	opts  Options
	log   *slog.Logger
	theme theme

	width      int
	height     int
	cursorRow  int
	cursorCol  int
	panMode    bool
	panTool    editor.Tool
	mode       Mode
	help       bool
	helpScroll int

	inputOp       InputOp
	input         string
	fromStartup   bool
	confirmAction ConfirmAction
	pendingPath   string

	projects        []*chart.Project
	selectedProject int
	newChartType    chart.ChartType

	lastScheduled  uint64
	quitting       bool
	errorMessage   string
	successMessage string
}

// New builds the program model. When ed has no project open it shows the
// project picker, or starts an untitled chart if the picker is disabled.
func New(ctx context.Context, ed *editor.Editor, store Store, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if !opts.ChartType.Valid() {
		opts.ChartType = chart.Colorwork
	}
	if opts.Settings.Width == 0 || opts.Settings.Height == 0 {
		opts.Settings = chart.DefaultSettings()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	m := Model{
		ctx:          ctx,
		ed:           ed,
		store:        store,
		opts:         opts,
		log:          opts.Logger,
		theme:        themeFor(opts.DarkMode),
		width:        80,
		height:       24,
		mode:         ModeNormal,
		newChartType: opts.ChartType,
	}
	if ed.Project() == nil {
		if opts.StartMenu && store != nil {
			m.mode = ModeStartup
			m.refreshProjects()
		} else {
			ed.CreateProject("Untitled", opts.ChartType, opts.Settings)
		}
	}
	m.lastScheduled = ed.Revision()
	return m
}

// Run starts the full-screen program and blocks until it quits.
func Run(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case autosaveMsg:
		return m.autosave(msg), nil

	case tea.MouseMsg:
		if m.mode != ModeNormal || m.help {
			return m, nil
		}
		m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg), nil
		}
		switch m.mode {
		case ModeStartup:
			m = m.handleStartupKey(msg)
		case ModeInput:
			m = m.handleInputKey(msg)
		case ModeConfirm:
			m = m.handleConfirmKey(msg)
		default:
			m = m.handleNormalKey(msg)
		}
		if m.quitting {
			return m, tea.Quit
		}
	}
	cmd = m.scheduleAutosave()
	return m, cmd
}

// scheduleAutosave arms a timer for the current revision. A timer whose
// revision has been overtaken by later edits does nothing when it fires.
func (m *Model) scheduleAutosave() tea.Cmd {
	if m.opts.Autosave <= 0 || !m.ed.Dirty() || m.ed.Revision() == m.lastScheduled {
		return nil
	}
	rev := m.ed.Revision()
	m.lastScheduled = rev
	return tea.Tick(m.opts.Autosave, func(time.Time) tea.Msg {
		return autosaveMsg{revision: rev}
	})
}

func (m Model) autosave(msg autosaveMsg) Model {
	saved, err := m.ed.SaveIfIdle(m.ctx, msg.revision)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Autosave failed: %s", err)
		return m
	}
	if saved {
		m.log.Debug("autosaved", "project", m.ed.Project().ID, "revision", msg.revision)
		m.successMessage = "Autosaved"
	}
	return m
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y, inside := m.canvasPoint(msg.X, msg.Y)
	switch msg.Type {
	case tea.MouseLeft:
		if !inside {
			return
		}
		m.cursorToScreen(x, y)
		m.ed.PointerDown(x, y)
	case tea.MouseMotion:
		if !m.ed.Dragging() {
			return
		}
		if !inside {
			// leaving the canvas ends the gesture
			m.ed.PointerCancel()
			return
		}
		m.cursorToScreen(x, y)
		m.ed.PointerMove(x, y)
	case tea.MouseRelease:
		m.ed.PointerUp(x, y)
	case tea.MouseWheelUp:
		m.ed.Wheel(1)
	case tea.MouseWheelDown:
		m.ed.Wheel(-1)
	}
}

// canvasPoint converts a terminal position to canvas coordinates.
func (m Model) canvasPoint(col, row int) (x, y float64, inside bool) {
	w, h := m.canvasSize()
	x = float64(col - m.gutter())
	y = float64(row - headerLines)
	inside = x >= 0 && y >= 0 && x < float64(w) && y < float64(h)
	return x, y, inside
}

func (m Model) canvasSize() (w, h int) {
	w = max(1, m.width-m.gutter())
	h = max(1, m.height-headerLines-footerLines)
	return w, h
}

// gutter is the width of the row number column.
func (m Model) gutter() int {
	p := m.ed.Project()
	if p == nil || p.Grid == nil || !p.Settings.Numbers() {
		return 0
	}
	return gutterWidth
}

func (m Model) isGrid() bool {
	p := m.ed.Project()
	return p != nil && p.Grid != nil
}

func (m *Model) refreshProjects() {
	if m.store == nil {
		return
	}
	m.projects = m.store.List(m.ctx)
	if m.selectedProject >= len(m.projects) {
		m.selectedProject = max(0, len(m.projects)-1)
	}
}

// requestQuit asks first when confirmations are on.
func (m *Model) requestQuit() {
	if m.opts.Confirmations {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
		return
	}
	m.quit()
}

// quit saves a dirty project and stops the program. A failed save keeps
// the program running so the work is not lost.
func (m *Model) quit() {
	if m.ed.Project() != nil && m.ed.Dirty() && m.store != nil {
		if err := m.ed.Save(m.ctx); err != nil {
			m.mode = ModeNormal
			m.errorMessage = fmt.Sprintf("Error saving: %s", err)
			return
		}
	}
	m.quitting = true
}

func (m *Model) save() {
	if err := m.ed.Save(m.ctx); err != nil {
		m.errorMessage = fmt.Sprintf("Error saving: %s", err)
		return
	}
	m.successMessage = fmt.Sprintf("Saved %s", m.ed.Project().Name)
}

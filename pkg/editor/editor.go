// Package editor owns the open project and every mutation made to it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stitchgrid/pkg/chart"
)

// ErrNoProject is returned by I/O operations when no project is open.
var ErrNoProject = errors.New("editor: no project open")

// Persistence loads and saves projects.
type Persistence interface {
	Load(ctx context.Context, id string) (*chart.Project, error)
	Save(ctx context.Context, p *chart.Project) error
}

type EventKind int

const (
	// ProjectChanged fires after any change to the project data.
	ProjectChanged EventKind = iota
	// ViewChanged covers tool, zoom, pan, selection and active colour changes.
	ViewChanged
	// ProjectOpened fires when a project is created, loaded or closed.
	ProjectOpened
	ProjectSaved
)

type Event struct {
	Kind     EventKind
	Revision uint64
}

type Option func(*Editor)

func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

func WithIDs(next func() string) Option {
	return func(e *Editor) { e.newID = next }
}

func WithHistoryLimit(n int) Option {
	return func(e *Editor) { e.history = NewHistory(n) }
}

func WithViewport(v Viewport) Option {
	return func(e *Editor) { e.defaultView = v }
}

// Editor is the application state: the open project plus everything the
// tools need (active colour, selection, clipboard, view). It is not safe
// for concurrent use; one event loop drives it.
type Editor struct {
	store   Persistence
	log     *slog.Logger
	now     func() time.Time
	newID   func() string
	history *History

	project  *chart.Project
	surface  surface
	dirty    bool
	revision uint64

	activeColorID    string
	activeSymbolID   string
	selection        *chart.Selection
	clipboard        *chart.Clipboard
	selectedSymbolID string

	tool        Tool
	view        Viewport
	defaultView Viewport
	session     *session

	listeners map[int]func(Event)
	nextSub   int
}

func New(store Persistence, opts ...Option) *Editor {
	e := &Editor{
		store:       store,
		log:         slog.Default(),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
		history:     NewHistory(DefaultHistoryLimit),
		tool:        ToolDraw,
		defaultView: DefaultViewport(),
		listeners:   map[int]func(Event){},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.view = e.defaultView
	return e
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (e *Editor) Subscribe(fn func(Event)) func() {
	id := e.nextSub
	e.nextSub++
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

func (e *Editor) emit(kind EventKind) {
	ev := Event{Kind: kind, Revision: e.revision}
	for _, fn := range e.listeners {
		fn(ev)
	}
}

// pushUndo snapshots the project ahead of a mutation.
func (e *Editor) pushUndo() {
	e.history.Push(e.project.Clone())
}

// touch finishes a mutation: bump the revision, mark dirty, notify.
func (e *Editor) touch() {
	e.project.Touch(e.now())
	e.dirty = true
	e.revision++
	e.emit(ProjectChanged)
}

func (e *Editor) viewChanged() {
	e.emit(ViewChanged)
}

// CreateProject opens a new, unsaved project seeded with one colour.
func (e *Editor) CreateProject(name string, chartType chart.ChartType, settings chart.Settings) *chart.Project {
	if !chartType.Valid() {
		chartType = chart.Colorwork
	}
	p := chart.NewProject(e.newID(), name, chartType, settings, e.now())
	p.Palette = chart.Palette{{
		ID:           e.newID(),
		Color:        chart.DefaultColor,
		Name:         "Color 1",
		Abbreviation: "C1",
	}}
	p.Normalize()
	e.install(p)
	e.dirty = true
	e.log.Info("project created", "project", p.ID, "type", p.ChartType)
	return p
}

// CreateFromImport opens a new grid project built from imported cells.
// Freeform chart types cannot hold cells and fall back to colorwork.
func (e *Editor) CreateFromImport(name string, chartType chart.ChartType, cells [][]chart.Cell, palette chart.Palette) *chart.Project {
	if chartType.Kind() != chart.KindGrid || !chartType.Valid() {
		chartType = chart.Colorwork
	}
	grid := &chart.Grid{Cells: cells}
	settings := chart.DefaultSettings()
	settings.Width, settings.Height = grid.Width(), grid.Height()

	p := chart.NewProject(e.newID(), name, chartType, settings, e.now())
	p.Grid = grid
	p.Palette = palette.Clone()
	p.Normalize()
	e.install(p)
	e.dirty = true
	e.log.Info("project imported", "project", p.ID, "width", p.Width(), "height", p.Height(), "colors", len(p.Palette))
	return p
}

// LoadProject reads a project from the store and opens it.
func (e *Editor) LoadProject(ctx context.Context, id string) error {
	if e.store == nil {
		return fmt.Errorf("editor: load %s: no store", id)
	}
	p, err := e.store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("editor: load %s: %w", id, err)
	}
	e.Open(p)
	return nil
}

// Open installs p as the current project. The editor takes ownership of p.
func (e *Editor) Open(p *chart.Project) {
	p.Normalize()
	e.install(p)
	e.log.Info("project opened", "project", p.ID, "type", p.ChartType)
}

func (e *Editor) install(p *chart.Project) {
	e.endSession()
	e.project = p
	e.surface = surfaceFor(p)
	e.history.Clear()
	e.dirty = false
	e.revision++
	e.activeColorID = p.Palette.First()
	e.selection = nil
	e.selectedSymbolID = ""
	e.view = e.defaultView
	e.emit(ProjectOpened)
}

// Save writes a snapshot of the project to the store.
func (e *Editor) Save(ctx context.Context) error {
	if e.project == nil {
		return ErrNoProject
	}
	if e.store == nil {
		return fmt.Errorf("editor: save %s: no store", e.project.ID)
	}
	if err := e.store.Save(ctx, e.project.Clone()); err != nil {
		e.log.Error("save failed", "project", e.project.ID, "err", err)
		return fmt.Errorf("editor: save %s: %w", e.project.ID, err)
	}
	e.dirty = false
	e.emit(ProjectSaved)
	e.log.Debug("project saved", "project", e.project.ID, "revision", e.revision)
	return nil
}

// SaveIfIdle saves only when the project is dirty and nothing changed since
// revision was observed. It reports whether a save happened.
func (e *Editor) SaveIfIdle(ctx context.Context, revision uint64) (bool, error) {
	if e.project == nil || !e.dirty || revision != e.revision {
		return false, nil
	}
	if err := e.Save(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Editor) Close() {
	e.endSession()
	e.project = nil
	e.surface = nil
	e.history.Clear()
	e.dirty = false
	e.activeColorID = ""
	e.selection = nil
	e.selectedSymbolID = ""
	e.revision++
	e.emit(ProjectOpened)
}

// Undo restores the state before the last mutation.
func (e *Editor) Undo() bool {
	if e.project == nil {
		return false
	}
	prev, ok := e.history.Undo(e.project)
	if !ok {
		return false
	}
	e.restore(prev)
	return true
}

func (e *Editor) Redo() bool {
	if e.project == nil {
		return false
	}
	next, ok := e.history.Redo(e.project)
	if !ok {
		return false
	}
	e.restore(next)
	return true
}

func (e *Editor) restore(p *chart.Project) {
	e.endSession()
	e.project = p
	e.surface = surfaceFor(p)
	if e.project.Palette.Index(e.activeColorID) < 0 {
		e.activeColorID = e.project.Palette.First()
	}
	e.reclampSelection()
	if e.project.Freeform != nil {
		if _, s := e.project.Freeform.Symbol(e.selectedSymbolID); s == nil {
			e.selectedSymbolID = ""
		}
	}
	e.dirty = true
	e.revision++
	e.emit(ProjectChanged)
}

func (e *Editor) reclampSelection() {
	if e.selection == nil {
		return
	}
	if e.project.Grid == nil {
		e.selection = nil
		return
	}
	s := e.selection.Clamp(e.project.Grid)
	e.selection = &s
}

// Project is the live project. Callers must treat it as read-only; use
// Snapshot for anything that outlives the current event.
func (e *Editor) Project() *chart.Project { return e.project }

// Snapshot returns a deep copy of the project, or nil.
func (e *Editor) Snapshot() *chart.Project { return e.project.Clone() }

func (e *Editor) Dirty() bool      { return e.dirty }
func (e *Editor) Revision() uint64 { return e.revision }
func (e *Editor) CanUndo() bool    { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool    { return e.history.CanRedo() }
func (e *Editor) History() *History {
	return e.history
}

func (e *Editor) Tool() Tool             { return e.tool }
func (e *Editor) Viewport() Viewport     { return e.view }
func (e *Editor) ActiveColor() string    { return e.activeColorID }
func (e *Editor) ActiveSymbol() string   { return e.activeSymbolID }
func (e *Editor) SelectedSymbol() string { return e.selectedSymbolID }
func (e *Editor) Clipboard() *chart.Clipboard {
	return e.clipboard
}

// Selection returns the active selection, if any.
func (e *Editor) Selection() (chart.Selection, bool) {
	if e.selection == nil {
		return chart.Selection{}, false
	}
	return *e.selection, true
}

// ToggleShowNumbers flips the row/column number display.
func (e *Editor) ToggleShowNumbers() bool {
	if e.project == nil {
		return false
	}
	e.project.Settings.SetNumbers(!e.project.Settings.Numbers())
	e.touch()
	return true
}

// Rename changes the project name.
func (e *Editor) Rename(name string) bool {
	if e.project == nil || name == "" || name == e.project.Name {
		return false
	}
	e.pushUndo()
	e.project.Name = name
	e.touch()
	return true
}

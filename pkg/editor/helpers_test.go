package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"stitchgrid/pkg/chart"
)

var errMissing = errors.New("missing")

type memStore struct {
	projects map[string]*chart.Project
	saves    int
	fail     error
}

func newMemStore() *memStore {
	return &memStore{projects: map[string]*chart.Project{}}
}

func (m *memStore) Load(_ context.Context, id string) (*chart.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, errMissing
	}
	return p.Clone(), nil
}

func (m *memStore) Save(_ context.Context, p *chart.Project) error {
	if m.fail != nil {
		return m.fail
	}
	m.saves++
	m.projects[p.ID] = p.Clone()
	return nil
}

func newTestEditor(t *testing.T, store Persistence) *Editor {
	t.Helper()
	n := 0
	return New(store,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
}

// gridEditor opens a width x height colorwork project whose palette holds
// the colours "red", "blue" and "green" (by id), with red active.
func gridEditor(t *testing.T, width, height int) *Editor {
	t.Helper()
	e := newTestEditor(t, newMemStore())
	settings := chart.DefaultSettings()
	settings.Width, settings.Height = width, height
	p := chart.NewProject("p1", "test", chart.Colorwork, settings, time.Unix(0, 0))
	p.Palette = chart.Palette{
		{ID: "red", Color: "#FF0000", Name: "Red", Abbreviation: "R"},
		{ID: "blue", Color: "#0000FF", Name: "Blue", Abbreviation: "B"},
		{ID: "green", Color: "#00FF00", Name: "Green", Abbreviation: "G"},
	}
	e.Open(p)
	return e
}

func freeformEditor(t *testing.T) *Editor {
	t.Helper()
	e := newTestEditor(t, newMemStore())
	settings := chart.DefaultSettings()
	settings.Width, settings.Height = 10, 10
	e.CreateProject("free", chart.FreeformChart, settings)
	// 1 screen unit == 1 world unit
	e.view = Viewport{Zoom: 1, CellWidth: chart.GridCellSize, CellHeight: chart.GridCellSize}
	e.defaultView = e.view
	return e
}

func undoDepth(e *Editor) int {
	n, _ := e.History().Depth()
	return n
}

// screen returns the centre of a grid cell in screen coordinates.
func screen(e *Editor, row, col int) (float64, float64) {
	x, y := e.view.CellOrigin(row, col)
	w, h := e.view.CellSize()
	return x + w/2, y + h/2
}

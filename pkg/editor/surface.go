package editor

import "stitchgrid/pkg/chart"

// surface turns pointer gestures into model edits for one kind of chart.
// The editor picks one when a project is installed.
type surface interface {
	down(e *Editor, s *session, x, y float64)
	move(e *Editor, s *session, x, y float64)
	up(e *Editor, s *session, x, y float64)
}

func surfaceFor(p *chart.Project) surface {
	if p.Kind() == chart.KindFreeform {
		return freeformSurface{}
	}
	return gridSurface{}
}

type gridSurface struct{}

func (gridSurface) down(e *Editor, s *session, x, y float64) {
	cell := e.view.CellAt(x, y)
	switch s.tool {
	case ToolDraw, ToolErase:
		s.painted = map[cellKey]bool{}
		paintStroke(e, s, cell)
	case ToolSelect:
		if !e.project.Grid.InBounds(cell.Row, cell.Col) {
			e.session = nil
			return
		}
		e.SetSelection(chart.Selection{StartRow: cell.Row, StartCol: cell.Col, EndRow: cell.Row, EndCol: cell.Col})
	}
}

func (gridSurface) move(e *Editor, s *session, x, y float64) {
	cell := e.view.CellAt(x, y)
	switch s.tool {
	case ToolDraw, ToolErase:
		paintStroke(e, s, cell)
	case ToolSelect:
		if e.selection == nil {
			return
		}
		next := chart.Selection{
			StartRow: e.selection.StartRow,
			StartCol: e.selection.StartCol,
			EndRow:   cell.Row,
			EndCol:   cell.Col,
		}.Clamp(e.project.Grid)
		if next != *e.selection {
			e.selection = &next
			e.viewChanged()
		}
	}
}

func (gridSurface) up(e *Editor, s *session, x, y float64) {
	start := e.view.CellAt(s.start.x, s.start.y)
	cell := e.view.CellAt(x, y)
	if cell != start {
		return
	}
	switch s.tool {
	case ToolFill:
		if e.activeColorID != "" {
			e.FloodFill(cell.Row, cell.Col, e.activeColorID)
		}
	case ToolEyedropper:
		c, ok := e.project.Grid.At(cell.Row, cell.Col)
		if ok && c.ColorID != "" && e.project.Palette.Index(c.ColorID) >= 0 {
			e.activeColorID = c.ColorID
			e.SetTool(ToolDraw)
		}
	}
}

// paintStroke paints one cell of a draw or erase drag. Each cell is visited
// once per stroke and the whole stroke is a single undo step.
func paintStroke(e *Editor, s *session, cell chart.Point) {
	g := e.project.Grid
	key := cellKey{cell.Row, cell.Col}
	if !g.InBounds(cell.Row, cell.Col) || s.painted[key] {
		return
	}
	s.painted[key] = true

	colorID := ""
	if s.tool == ToolDraw {
		if e.activeColorID == "" {
			return
		}
		colorID = e.activeColorID
	}
	if g.Cells[cell.Row][cell.Col].ColorID == colorID {
		return
	}
	if !s.pushed {
		e.pushUndo()
		s.pushed = true
	}
	g.Paint(cell.Row, cell.Col, colorID)
	e.touch()
}

type freeformSurface struct{}

func (freeformSurface) down(e *Editor, s *session, x, y float64) {
	f := e.project.Freeform
	wx, wy := e.view.ToWorld(x, y)
	switch s.tool {
	case ToolSelect:
		id := f.SymbolAt(wx, wy)
		e.SelectSymbol(id)
		if id == "" {
			e.session = nil
			return
		}
		s.symbolID = id
	case ToolDraw:
		if e.activeSymbolID == "" || !chart.InWorkingArea(e.project.Settings, wx, wy) {
			return
		}
		e.AddPlacedSymbol(e.activeSymbolID, wx, wy)
	case ToolErase:
		if id := f.SymbolAt(wx, wy); id != "" {
			e.RemovePlacedSymbol(id)
		}
	}
}

func (freeformSurface) move(e *Editor, s *session, x, y float64) {
	if s.tool != ToolSelect || s.symbolID == "" {
		return
	}
	wx, wy := e.view.ToWorld(x, y)
	e.dragSymbol(s, wx, wy)
}

func (freeformSurface) up(e *Editor, s *session, x, y float64) {
	if s.tool != ToolEyedropper {
		return
	}
	wx, wy := e.view.ToWorld(x, y)
	_, sym := e.project.Freeform.Symbol(e.project.Freeform.SymbolAt(wx, wy))
	if sym == nil {
		return
	}
	if e.project.Palette.Index(sym.ColorID) >= 0 {
		e.activeColorID = sym.ColorID
	}
	e.activeSymbolID = sym.SymbolID
	e.SetTool(ToolDraw)
}

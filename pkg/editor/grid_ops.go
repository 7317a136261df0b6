package editor

import "stitchgrid/pkg/chart"

// CellEdit is one entry of a batch write. A nil SymbolID keeps the
// cell's existing symbol.
type CellEdit struct {
	Row, Col int
	ColorID  string
	SymbolID *string
}

// SetSymbol is a helper for building CellEdit values.
func SetSymbol(id string) *string { return &id }

func (e *Editor) grid() *chart.Grid {
	if e.project == nil {
		return nil
	}
	return e.project.Grid
}

// resolve returns the cell an edit would produce and whether it differs
// from what is there now.
func resolve(g *chart.Grid, ed CellEdit) (chart.Cell, bool) {
	cur, ok := g.At(ed.Row, ed.Col)
	if !ok {
		return cur, false
	}
	next := chart.Cell{ColorID: ed.ColorID, SymbolID: cur.SymbolID}
	if ed.SymbolID != nil {
		next.SymbolID = *ed.SymbolID
	}
	return next, next != cur
}

// SetCell sets a cell's colour and keeps its symbol.
func (e *Editor) SetCell(row, col int, colorID string) bool {
	return e.SetCells([]CellEdit{{Row: row, Col: col, ColorID: colorID}})
}

// SetCellWithSymbol sets both the colour and the symbol of a cell.
func (e *Editor) SetCellWithSymbol(row, col int, colorID, symbolID string) bool {
	return e.SetCells([]CellEdit{{Row: row, Col: col, ColorID: colorID, SymbolID: &symbolID}})
}

// SetCells applies a batch as one undo step. Out-of-bounds entries are skipped.
// It reports whether any cell changed.
func (e *Editor) SetCells(edits []CellEdit) bool {
	g := e.grid()
	if g == nil {
		return false
	}
	changed := false
	for _, ed := range edits {
		next, differs := resolve(g, ed)
		if !differs {
			continue
		}
		if !changed {
			e.pushUndo()
			changed = true
		}
		g.Set(ed.Row, ed.Col, next)
	}
	if changed {
		e.touch()
	}
	return changed
}

// FloodFill recolours the region around the seed. A seed already at
// colorID, or outside the grid, changes nothing and records no history.
func (e *Editor) FloodFill(row, col int, colorID string) bool {
	g := e.grid()
	if g == nil || !g.CanFlood(row, col, colorID) {
		return false
	}
	e.pushUndo()
	n := g.FloodFill(row, col, colorID)
	e.touch()
	e.log.Debug("flood fill", "project", e.project.ID, "row", row, "col", col, "cells", n)
	return true
}

// SetSelection replaces the active selection, clamped to the grid.
func (e *Editor) SetSelection(sel chart.Selection) bool {
	g := e.grid()
	if g == nil {
		return false
	}
	sel = sel.Clamp(g)
	e.selection = &sel
	e.viewChanged()
	return true
}

func (e *Editor) ClearSelection() {
	if e.selection == nil {
		return
	}
	e.selection = nil
	e.viewChanged()
}

// CopySelection snapshots the selected cells into the clipboard.
func (e *Editor) CopySelection() bool {
	g := e.grid()
	if g == nil || e.selection == nil {
		return false
	}
	e.clipboard = g.Copy(*e.selection)
	e.viewChanged()
	return true
}

// PasteSelection writes the clipboard at the selection's top-left corner,
// dropping whatever falls past the grid edge.
func (e *Editor) PasteSelection() bool {
	g := e.grid()
	if g == nil || e.selection == nil || e.clipboard.Height() == 0 {
		return false
	}
	b := e.selection.Bounds()
	e.pushUndo()
	g.Paste(e.clipboard, b.MinRow, b.MinCol)
	e.touch()
	return true
}

// FillSelection sets every selected cell to colorID; "" clears them.
func (e *Editor) FillSelection(colorID string) bool {
	g := e.grid()
	if g == nil || e.selection == nil {
		return false
	}
	e.pushUndo()
	g.FillRect(*e.selection, colorID)
	e.touch()
	return true
}

// RemoveSelection clears the colour of the selected cells.
func (e *Editor) RemoveSelection() bool {
	return e.FillSelection("")
}

func (e *Editor) MirrorSelectionH() bool {
	g := e.grid()
	if g == nil || e.selection == nil {
		return false
	}
	e.pushUndo()
	g.MirrorH(*e.selection)
	e.touch()
	return true
}

func (e *Editor) MirrorSelectionV() bool {
	g := e.grid()
	if g == nil || e.selection == nil {
		return false
	}
	e.pushUndo()
	g.MirrorV(*e.selection)
	e.touch()
	return true
}

// structural runs a shape-changing grid op as one undo step.
func (e *Editor) structural(valid func(g *chart.Grid) bool, op func(g *chart.Grid) bool) bool {
	g := e.grid()
	if g == nil || !valid(g) {
		return false
	}
	e.pushUndo()
	op(g)
	e.project.SyncSettings()
	e.reclampSelection()
	e.touch()
	return true
}

// ResizeGrid crops or pads the grid, anchored at the top-left.
func (e *Editor) ResizeGrid(width, height int) bool {
	return e.structural(
		func(g *chart.Grid) bool {
			return chart.ValidDimensions(width, height) && (width != g.Width() || height != g.Height())
		},
		func(g *chart.Grid) bool { return g.Resize(width, height) },
	)
}

func (e *Editor) InsertRow(index int) bool {
	return e.structural(
		func(g *chart.Grid) bool { return g.Height() < chart.MaxDimension },
		func(g *chart.Grid) bool { return g.InsertRow(index) },
	)
}

func (e *Editor) DeleteRow(index int) bool {
	return e.structural(
		func(g *chart.Grid) bool { return g.Height() > chart.MinDimension && index >= 0 && index < g.Height() },
		func(g *chart.Grid) bool { return g.DeleteRow(index) },
	)
}

func (e *Editor) InsertColumn(index int) bool {
	return e.structural(
		func(g *chart.Grid) bool { return g.Width() < chart.MaxDimension },
		func(g *chart.Grid) bool { return g.InsertColumn(index) },
	)
}

func (e *Editor) DeleteColumn(index int) bool {
	return e.structural(
		func(g *chart.Grid) bool { return g.Width() > chart.MinDimension && index >= 0 && index < g.Width() },
		func(g *chart.Grid) bool { return g.DeleteColumn(index) },
	)
}

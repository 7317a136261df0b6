package editor

import "stitchgrid/pkg/chart"

func (e *Editor) freeform() *chart.Freeform {
	if e.project == nil {
		return nil
	}
	return e.project.Freeform
}

// LayerPatch changes the set fields of a layer.
type LayerPatch struct {
	Name    *string
	Visible *bool
	Locked  *bool
}

// SymbolPatch changes the set fields of a placed symbol.
type SymbolPatch struct {
	SymbolID *string
	ColorID  *string
}

func (e *Editor) AddLayer() *chart.Layer {
	f := e.freeform()
	if f == nil {
		return nil
	}
	e.pushUndo()
	l := f.AddLayer()
	l.ID = e.newID()
	e.touch()
	return l
}

func (e *Editor) RemoveLayer(id string) bool {
	f := e.freeform()
	if f == nil || len(f.Layers) <= 1 || f.Layer(id) == nil {
		return false
	}
	e.pushUndo()
	f.RemoveLayer(id)
	if _, s := f.Symbol(e.selectedSymbolID); s == nil {
		e.selectedSymbolID = ""
	}
	e.touch()
	return true
}

func (e *Editor) UpdateLayer(id string, patch LayerPatch) bool {
	f := e.freeform()
	if f == nil {
		return false
	}
	l := f.Layer(id)
	if l == nil {
		return false
	}
	next := *l
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Visible != nil {
		next.Visible = *patch.Visible
	}
	if patch.Locked != nil {
		next.Locked = *patch.Locked
	}
	if next.Name == l.Name && next.Visible == l.Visible && next.Locked == l.Locked {
		return false
	}
	e.pushUndo()
	l.Name, l.Visible, l.Locked = next.Name, next.Visible, next.Locked
	e.touch()
	return true
}

// SetActiveLayer chooses where draw places new symbols. It is view state
// and records no history.
func (e *Editor) SetActiveLayer(id string) bool {
	f := e.freeform()
	if f == nil || f.Layer(id) == nil {
		return false
	}
	f.ActiveLayerID = id
	e.dirty = true
	e.revision++
	e.emit(ViewChanged)
	return true
}

// ReorderLayers sets the z-order; see chart.Freeform.Reorder.
func (e *Editor) ReorderLayers(ids []string) bool {
	f := e.freeform()
	if f == nil {
		return false
	}
	e.pushUndo()
	f.Reorder(ids)
	e.touch()
	return true
}

// AddPlacedSymbol puts a new symbol on the active layer and selects it. It
// returns nil when there is no usable active layer.
func (e *Editor) AddPlacedSymbol(symbolID string, x, y float64) *chart.PlacedSymbol {
	f := e.freeform()
	if f == nil || symbolID == "" {
		return nil
	}
	l := f.ActiveLayer()
	if l == nil || l.Locked {
		return nil
	}
	colorID := e.activeColorID
	if colorID == "" {
		colorID = e.project.Palette.First()
	}
	e.pushUndo()
	l.Symbols = append(l.Symbols, chart.PlacedSymbol{
		ID:       e.newID(),
		SymbolID: symbolID,
		ColorID:  colorID,
		X:        x,
		Y:        y,
		Rotation: 0,
		Scale:    1,
	})
	placed := &l.Symbols[len(l.Symbols)-1]
	e.selectedSymbolID = placed.ID
	e.touch()
	return placed
}

func (e *Editor) RemovePlacedSymbol(id string) bool {
	f := e.freeform()
	if f == nil {
		return false
	}
	if _, s := f.Symbol(id); s == nil {
		return false
	}
	e.pushUndo()
	f.RemoveSymbol(id)
	if e.selectedSymbolID == id {
		e.selectedSymbolID = ""
	}
	e.touch()
	return true
}

// editSymbol applies fn to a placed symbol as one undo step when it changes anything.
func (e *Editor) editSymbol(id string, fn func(s *chart.PlacedSymbol)) bool {
	f := e.freeform()
	if f == nil {
		return false
	}
	_, s := f.Symbol(id)
	if s == nil {
		return false
	}
	next := *s
	fn(&next)
	if next == *s {
		return false
	}
	e.pushUndo()
	*s = next
	e.touch()
	return true
}

func (e *Editor) MovePlacedSymbol(id string, x, y float64) bool {
	return e.editSymbol(id, func(s *chart.PlacedSymbol) { s.X, s.Y = x, y })
}

// RotatePlacedSymbol sets the rotation in degrees, wrapped into [0, 360).
func (e *Editor) RotatePlacedSymbol(id string, deg float64) bool {
	return e.editSymbol(id, func(s *chart.PlacedSymbol) { s.Rotation = chart.WrapRotation(deg) })
}

// ScalePlacedSymbol sets the scale, floored at chart.MinScale.
func (e *Editor) ScalePlacedSymbol(id string, scale float64) bool {
	return e.editSymbol(id, func(s *chart.PlacedSymbol) { s.Scale = chart.ClampScale(scale) })
}

func (e *Editor) UpdatePlacedSymbol(id string, patch SymbolPatch) bool {
	return e.editSymbol(id, func(s *chart.PlacedSymbol) {
		if patch.SymbolID != nil {
			s.SymbolID = *patch.SymbolID
		}
		if patch.ColorID != nil {
			s.ColorID = *patch.ColorID
		}
	})
}

// SelectSymbol sets the selected placed symbol; "" clears it.
func (e *Editor) SelectSymbol(id string) {
	if id != "" {
		f := e.freeform()
		if f == nil {
			return
		}
		if _, s := f.Symbol(id); s == nil {
			return
		}
	}
	e.selectedSymbolID = id
	e.viewChanged()
}

// dragSymbol moves a symbol during a drag. Only the first move of a drag
// records history.
func (e *Editor) dragSymbol(s *session, x, y float64) {
	f := e.freeform()
	if f == nil {
		return
	}
	_, sym := f.Symbol(s.symbolID)
	if sym == nil {
		return
	}
	x, y = chart.ClampToWorkingArea(e.project.Settings, x, y)
	if sym.X == x && sym.Y == y {
		return
	}
	if !s.pushed {
		e.pushUndo()
		s.pushed = true
	}
	sym.X, sym.Y = x, y
	e.touch()
}

package editor

import (
	"errors"

	"stitchgrid/pkg/chart"
)

var ErrUnknownColor = errors.New("editor: unknown colour")

// ColorPatch changes the set fields of a palette entry.
type ColorPatch struct {
	Color        *string
	Name         *string
	Abbreviation *string
	SymbolID     *string
}

// AddColor appends a colour. An empty name gets the automatic "Color N".
func (e *Editor) AddColor(hex, name string) (chart.PaletteEntry, error) {
	if e.project == nil {
		return chart.PaletteEntry{}, ErrNoProject
	}
	entry, err := chart.NewPaletteEntry(hex, name, len(e.project.Palette)+1)
	if err != nil {
		return chart.PaletteEntry{}, err
	}
	entry.ID = e.newID()
	e.pushUndo()
	e.project.Palette = append(e.project.Palette, entry)
	if e.activeColorID == "" {
		e.activeColorID = entry.ID
	}
	e.touch()
	return entry, nil
}

func (e *Editor) UpdateColor(id string, patch ColorPatch) error {
	if e.project == nil {
		return ErrNoProject
	}
	i := e.project.Palette.Index(id)
	if i < 0 {
		return ErrUnknownColor
	}
	next := e.project.Palette[i]
	if patch.Color != nil {
		hex, err := chart.NormalizeHex(*patch.Color)
		if err != nil {
			return err
		}
		next.Color = hex
	}
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Abbreviation != nil {
		next.Abbreviation = *patch.Abbreviation
	}
	if patch.SymbolID != nil {
		next.SymbolID = *patch.SymbolID
	}
	if next == e.project.Palette[i] {
		return nil
	}
	e.pushUndo()
	e.project.Palette[i] = next
	e.touch()
	return nil
}

// RemoveColor drops a palette entry and clears every reference to it. The
// last colour of a grid project cannot be removed. Freeform symbols using
// the colour move to the first remaining entry.
func (e *Editor) RemoveColor(id string) bool {
	if e.project == nil || e.project.Palette.Index(id) < 0 {
		return false
	}
	if e.project.Kind() == chart.KindGrid && len(e.project.Palette) <= 1 {
		return false
	}
	e.pushUndo()
	e.project.Palette.Remove(id)
	if e.project.Grid != nil {
		e.project.Grid.ReplaceColor(id, "")
	}
	if e.project.Freeform != nil {
		e.project.Freeform.ReplaceColor(id, e.project.Palette.First())
	}
	if e.activeColorID == id {
		e.activeColorID = e.project.Palette.First()
	}
	e.touch()
	return true
}

// SetActiveColor picks the colour used by draw and fill. "" is allowed and
// means nothing is active.
func (e *Editor) SetActiveColor(id string) bool {
	if e.project == nil || (id != "" && e.project.Palette.Index(id) < 0) {
		return false
	}
	e.activeColorID = id
	e.viewChanged()
	return true
}

// CycleColor steps the active colour through the palette.
func (e *Editor) CycleColor(step int) bool {
	if e.project == nil || len(e.project.Palette) == 0 {
		return false
	}
	n := len(e.project.Palette)
	i := e.project.Palette.Index(e.activeColorID)
	if i < 0 {
		i = 0
	} else {
		i = ((i+step)%n + n) % n
	}
	return e.SetActiveColor(e.project.Palette[i].ID)
}

// SetActiveSymbol picks the symbol placed by the freeform draw tool.
func (e *Editor) SetActiveSymbol(id string) {
	e.activeSymbolID = id
	e.viewChanged()
}

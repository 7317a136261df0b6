package chart

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

const (
	// SymbolSize is the rendered edge of a placed symbol at scale 1, in world units.
	SymbolSize = 40.0
	// GridCellSize is the world size of one settings cell; the freeform
	// working area is width*GridCellSize by height*GridCellSize.
	GridCellSize = 50.0
	// HitSlop widens the hit radius past the symbol's half-size.
	HitSlop = 1.2
	// MinScale is the smallest scale a placed symbol can take.
	MinScale   = 0.1
	RotateStep = 15.0
	ScaleStep  = 0.1

	DefaultLayerID = "layer-1"
)

type PlacedSymbol struct {
	ID       string  `json:"id"`
	SymbolID string  `json:"symbolId"`
	ColorID  string  `json:"colorId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// HitRadius is the distance from the centre within which the symbol is picked.
func (s PlacedSymbol) HitRadius() float64 {
	return SymbolSize / 2 * HitSlop * s.Scale
}

func (s PlacedSymbol) Hit(x, y float64) bool {
	return math.Hypot(x-s.X, y-s.Y) <= s.HitRadius()
}

type Layer struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Visible bool           `json:"visible"`
	Locked  bool           `json:"locked"`
	Symbols []PlacedSymbol `json:"symbols"`
}

// Freeform holds the layers of a freeform chart; later layers draw on top.
type Freeform struct {
	Layers        []*Layer `json:"layers"`
	ActiveLayerID string   `json:"activeLayerId"`
}

func NewFreeform() *Freeform {
	return &Freeform{
		Layers:        []*Layer{{ID: DefaultLayerID, Name: "Layer 1", Visible: true, Symbols: []PlacedSymbol{}}},
		ActiveLayerID: DefaultLayerID,
	}
}

func (f *Freeform) Clone() *Freeform {
	if f == nil {
		return nil
	}
	out := &Freeform{ActiveLayerID: f.ActiveLayerID, Layers: make([]*Layer, len(f.Layers))}
	for i, l := range f.Layers {
		cp := *l
		cp.Symbols = make([]PlacedSymbol, len(l.Symbols))
		copy(cp.Symbols, l.Symbols)
		out.Layers[i] = &cp
	}
	return out
}

func (f *Freeform) Layer(id string) *Layer {
	for _, l := range f.Layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (f *Freeform) ActiveLayer() *Layer {
	return f.Layer(f.ActiveLayerID)
}

// Symbol finds a placed symbol by id across every layer.
func (f *Freeform) Symbol(id string) (*Layer, *PlacedSymbol) {
	for _, l := range f.Layers {
		for i := range l.Symbols {
			if l.Symbols[i].ID == id {
				return l, &l.Symbols[i]
			}
		}
	}
	return nil, nil
}

// SymbolAt returns the id of the topmost pickable symbol under (x, y).
// Hidden and locked layers are skipped.
func (f *Freeform) SymbolAt(x, y float64) string {
	for i := len(f.Layers) - 1; i >= 0; i-- {
		l := f.Layers[i]
		if !l.Visible || l.Locked {
			continue
		}
		for j := len(l.Symbols) - 1; j >= 0; j-- {
			if l.Symbols[j].Hit(x, y) {
				return l.Symbols[j].ID
			}
		}
	}
	return ""
}

// AddLayer appends a visible, unlocked layer.
func (f *Freeform) AddLayer() *Layer {
	l := &Layer{
		ID:      uuid.New().String(),
		Name:    fmt.Sprintf("Layer %d", len(f.Layers)+1),
		Visible: true,
		Symbols: []PlacedSymbol{},
	}
	f.Layers = append(f.Layers, l)
	return l
}

// RemoveLayer refuses to drop the last layer. When the active layer goes,
// the first remaining layer becomes active.
func (f *Freeform) RemoveLayer(id string) bool {
	if len(f.Layers) <= 1 {
		return false
	}
	for i, l := range f.Layers {
		if l.ID != id {
			continue
		}
		f.Layers = append(f.Layers[:i], f.Layers[i+1:]...)
		if f.ActiveLayerID == id {
			f.ActiveLayerID = f.Layers[0].ID
		}
		return true
	}
	return false
}

// Reorder puts the layers in the order of ids. Unknown ids are ignored and
// layers missing from ids keep their relative order at the end.
func (f *Freeform) Reorder(ids []string) {
	seen := make(map[string]bool, len(f.Layers))
	out := make([]*Layer, 0, len(f.Layers))
	for _, id := range ids {
		if l := f.Layer(id); l != nil && !seen[id] {
			seen[id] = true
			out = append(out, l)
		}
	}
	for _, l := range f.Layers {
		if !seen[l.ID] {
			out = append(out, l)
		}
	}
	f.Layers = out
}

// RemoveSymbol deletes a placed symbol wherever it lives.
func (f *Freeform) RemoveSymbol(id string) bool {
	for _, l := range f.Layers {
		for i := range l.Symbols {
			if l.Symbols[i].ID == id {
				l.Symbols = append(l.Symbols[:i], l.Symbols[i+1:]...)
				return true
			}
		}
	}
	return false
}

// ReplaceColor recolours every symbol using from.
func (f *Freeform) ReplaceColor(from, to string) int {
	n := 0
	for _, l := range f.Layers {
		for i := range l.Symbols {
			if l.Symbols[i].ColorID == from {
				l.Symbols[i].ColorID = to
				n++
			}
		}
	}
	return n
}

// Normalize repairs data loaded from outside: at least one layer and a valid active layer.
func (f *Freeform) Normalize() {
	if len(f.Layers) == 0 {
		*f = *NewFreeform()
		return
	}
	for _, l := range f.Layers {
		if l.Symbols == nil {
			l.Symbols = []PlacedSymbol{}
		}
		for i := range l.Symbols {
			l.Symbols[i].Rotation = WrapRotation(l.Symbols[i].Rotation)
			l.Symbols[i].Scale = ClampScale(l.Symbols[i].Scale)
		}
	}
	if f.ActiveLayer() == nil {
		f.ActiveLayerID = f.Layers[0].ID
	}
}

// WrapRotation maps any angle into [0, 360).
func WrapRotation(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func ClampScale(scale float64) float64 {
	return math.Max(MinScale, scale)
}

// WorkingArea is the world-space extent symbols may occupy.
func WorkingArea(s Settings) (w, h float64) {
	return float64(s.Width) * GridCellSize, float64(s.Height) * GridCellSize
}

// InWorkingArea reports whether (x, y) lies inside the area, edges included.
func InWorkingArea(s Settings, x, y float64) bool {
	w, h := WorkingArea(s)
	return x >= 0 && y >= 0 && x <= w && y <= h
}

// ClampToWorkingArea pulls (x, y) onto the area.
func ClampToWorkingArea(s Settings, x, y float64) (float64, float64) {
	w, h := WorkingArea(s)
	return math.Max(0, math.Min(w, x)), math.Max(0, math.Min(h, y))
}

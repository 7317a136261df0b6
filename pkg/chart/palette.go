package chart

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor seeds every new project's palette.
const DefaultColor = "#4A90D9"

type PaletteEntry struct {
	ID           string `json:"id"`
	Color        string `json:"color"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	SymbolID     string `json:"symbolId,omitempty"`
}

// Label is the abbreviation, or the name when no abbreviation is set.
func (e PaletteEntry) Label() string {
	if e.Abbreviation != "" {
		return e.Abbreviation
	}
	return e.Name
}

// RGB returns the parsed entry colour. Unparseable colours come back black.
func (e PaletteEntry) RGB() colorful.Color {
	c, err := colorful.Hex(e.Color)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// NormalizeHex validates a "#RRGGBB" or "#RGB" colour and returns it as
// upper-case "#RRGGBB".
func NormalizeHex(hex string) (string, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return strings.ToUpper(c.Hex()), nil
}

// NewPaletteEntry builds the nth entry (1-based) with a fresh id and the
// automatic "Color n" / "Cn" labels when name is empty.
func NewPaletteEntry(hex, name string, n int) (PaletteEntry, error) {
	color, err := NormalizeHex(hex)
	if err != nil {
		return PaletteEntry{}, err
	}
	entry := PaletteEntry{
		ID:           uuid.New().String(),
		Color:        color,
		Name:         fmt.Sprintf("Color %d", n),
		Abbreviation: fmt.Sprintf("C%d", n),
	}
	if name != "" {
		entry.Name = name
	}
	return entry, nil
}

type Palette []PaletteEntry

func (p Palette) Index(id string) int {
	for i := range p {
		if p[i].ID == id {
			return i
		}
	}
	return -1
}

func (p Palette) Find(id string) (PaletteEntry, bool) {
	if i := p.Index(id); i >= 0 {
		return p[i], true
	}
	return PaletteEntry{}, false
}

func (p Palette) First() string {
	if len(p) == 0 {
		return ""
	}
	return p[0].ID
}

func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// Remove drops the entry with id and reports whether it existed.
func (p *Palette) Remove(id string) bool {
	i := p.Index(id)
	if i < 0 {
		return false
	}
	*p = append((*p)[:i], (*p)[i+1:]...)
	return true
}

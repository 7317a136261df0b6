package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/symbols"
)

// glyph is one terminal cell of the rendered canvas.
type glyph struct {
	r      rune
	fg, bg string
	bold   bool
}

// screen is a grid of glyphs, flushed to styled lines in runs of equal style.
type screen struct {
	w, h  int
	cells [][]glyph
}

func newScreen(w, h int, bg string) *screen {
	s := &screen{w: w, h: h, cells: make([][]glyph, h)}
	for y := range s.cells {
		row := make([]glyph, w)
		for x := range row {
			row[x] = glyph{r: ' ', bg: bg}
		}
		s.cells[y] = row
	}
	return s
}

func (s *screen) set(x, y int, g glyph) {
	if x >= 0 && y >= 0 && x < s.w && y < s.h {
		s.cells[y][x] = g
	}
}

func (s *screen) lines() []string {
	out := make([]string, s.h)
	for y, row := range s.cells {
		var b strings.Builder
		for x := 0; x < len(row); {
			start := x
			var run strings.Builder
			for x < len(row) && sameStyle(row[x], row[start]) {
				run.WriteRune(row[x].r)
				x++
			}
			g := row[start]
			style := lipgloss.NewStyle().Background(lipgloss.Color(g.bg)).Bold(g.bold)
			if g.fg != "" {
				style = style.Foreground(lipgloss.Color(g.fg))
			}
			b.WriteString(style.Render(run.String()))
		}
		out[y] = b.String()
	}
	return out
}

func sameStyle(a, b glyph) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

// renderCanvas paints the open chart into a w x h character area.
func (m Model) renderCanvas(w, h int) []string {
	p := m.ed.Project()
	s := newScreen(w, h, m.theme.outside)
	if p == nil {
		return s.lines()
	}
	if p.Grid != nil {
		m.paintGrid(s, p)
	} else {
		m.paintFreeform(s, p)
	}
	return s.lines()
}

func (m Model) paintGrid(s *screen, p *chart.Project) {
	g := p.Grid
	v := m.ed.Viewport()
	sel, hasSel := m.ed.Selection()
	width, height := g.Width(), g.Height()

	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			pt := v.CellAt(float64(x), float64(y))
			cell, ok := g.At(pt.Row, pt.Col)
			if !ok {
				continue
			}
			bg := m.theme.empty
			if e, found := p.Palette.Find(cell.ColorID); found {
				bg = e.Color
			}
			if hasSel && sel.Contains(pt.Row, pt.Col) {
				bg = blend(bg, m.theme.selection, 0.45)
			}
			if pr := p.Progress; pr != nil && pr.Darkened(pr.State(pt.Row, pt.Col, width, height)) {
				bg = darken(bg, pr.Brightness)
			}

			gl := glyph{r: ' ', bg: bg, fg: ink(bg)}
			// first terminal cell of a chart cell carries its mark
			leading := v.CellAt(float64(x-1), float64(y)).Col != pt.Col
			if leading {
				switch {
				case pt.Row == m.cursorRow && pt.Col == m.cursorCol:
					gl.r = '█'
				case cell.SymbolID != "":
					if sym, found := symbols.Get(cell.SymbolID); found {
						gl.r = sym.Glyph
					}
				case cell.ColorID == "":
					gl.r = '·'
					gl.fg = m.gridMark(p, pt)
				}
			} else if pt.Row == m.cursorRow && pt.Col == m.cursorCol {
				gl.r = '█'
			}
			s.set(x, y, gl)
		}
	}
}

// gridMark colours the dot in an empty cell, brighter on every fifth and
// tenth line when the chart highlights them.
func (m Model) gridMark(p *chart.Project, pt chart.Point) string {
	gl := p.Settings.GridLines
	fromBottom := p.Height() - pt.Row
	col := pt.Col + 1
	if (gl.Highlight10 && (fromBottom%10 == 0 || col%10 == 0)) ||
		(gl.Highlight5 && (fromBottom%5 == 0 || col%5 == 0)) {
		return m.theme.highlight
	}
	return m.theme.gridInk
}

func (m Model) paintFreeform(s *screen, p *chart.Project) {
	v := m.ed.Viewport()
	areaW, areaH := chart.WorkingArea(p.Settings)

	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			wx, wy := v.ToWorld(float64(x)+0.5, float64(y)+0.5)
			if wx >= 0 && wy >= 0 && wx < areaW && wy < areaH {
				s.set(x, y, glyph{r: ' ', bg: m.theme.empty})
			}
		}
	}

	selected := m.ed.SelectedSymbol()
	for _, layer := range p.Freeform.Layers {
		if !layer.Visible {
			continue
		}
		for _, placed := range layer.Symbols {
			sym, ok := symbols.Get(placed.SymbolID)
			if !ok {
				continue
			}
			sx, sy := v.ToScreen(placed.X, placed.Y)
			fg := ink(m.theme.empty)
			if e, found := p.Palette.Find(placed.ColorID); found {
				fg = e.Color
			}
			gl := glyph{r: sym.Glyph, fg: fg, bg: m.theme.empty}
			if placed.ID == selected {
				gl.bg = m.theme.selection
				gl.bold = true
			}
			s.set(int(math.Floor(sx)), int(math.Floor(sy)), gl)
		}
	}

	cx, cy := m.cursorPoint()
	x, y := int(math.Floor(cx)), int(math.Floor(cy))
	if x >= 0 && y >= 0 && x < s.w && y < s.h {
		under := s.cells[y][x]
		if under.r == ' ' {
			under.r = '█'
			under.fg = ink(under.bg)
		} else {
			under.bold = true
			under.bg = m.theme.selection
		}
		s.set(x, y, under)
	}
}

// rowNumbers is the gutter: row numbers counted from the bottom, as the
// chart is worked.
func (m Model) rowNumbers(h int) []string {
	p := m.ed.Project()
	out := make([]string, h)
	blank := strings.Repeat(" ", gutterWidth)
	if p == nil || p.Grid == nil {
		for i := range out {
			out[i] = blank
		}
		return out
	}
	v := m.ed.Viewport()
	prev := -1
	for y := 0; y < h; y++ {
		pt := v.CellAt(0, float64(y))
		out[y] = blank
		if pt.Row != prev && pt.Row >= 0 && pt.Row < p.Height() {
			n := p.Height() - pt.Row
			label := fmt.Sprintf("%*d ", gutterWidth-1, n)
			if pt.Row == m.cursorRow {
				out[y] = TitleStyle.Render(label)
			} else {
				out[y] = LabelStyle.Render(label)
			}
		}
		prev = pt.Row
	}
	return out
}

// paletteBar lists the colours with the active one bracketed.
func (m Model) paletteBar(width int) string {
	p := m.ed.Project()
	if p == nil {
		return ""
	}
	var b strings.Builder
	used := 0
	active := m.ed.ActiveColor()
	for _, e := range p.Palette {
		label := " " + e.Label() + " "
		if e.ID == active {
			label = "[" + e.Label() + "]"
		}
		cost := 2 + len([]rune(label)) + 1
		if used+cost > width {
			b.WriteString("…")
			break
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(e.Color)).Render("  ")
		if e.ID == active {
			label = SelectedStyle.Render(label)
		}
		b.WriteString(swatch + label + " ")
		used += cost
	}
	return b.String()
}

func parseHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// darken dims a colour to brightness percent of its value.
func darken(hex string, brightness int) string {
	keep := float64(max(0, min(100, brightness))) / 100
	return parseHex(hex).BlendRgb(colorful.Color{}, 1-keep).Clamped().Hex()
}

func blend(hex, with string, t float64) string {
	return parseHex(hex).BlendLab(parseHex(with), t).Clamped().Hex()
}

// ink picks a legible glyph colour for a background.
func ink(bg string) string {
	l, _, _ := parseHex(bg).Lab()
	if l > 0.55 {
		return "#000000"
	}
	return "#ffffff"
}

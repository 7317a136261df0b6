package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"stitchgrid/pkg/chart"
)

// keyRunes label palette entries in a text chart, in palette order.
const keyRunes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	emptyRune    = '.'
	overflowRune = '?'
)

// Text writes the grid as one character per cell with a legend below.
// Rows are numbered from the bottom when the project shows numbers.
func Text(w io.Writer, p *chart.Project, sel *chart.Selection) error {
	if p == nil || p.Grid == nil {
		return ErrNoGrid
	}
	g := p.Grid
	bounds := chart.Rect{MaxRow: g.Height() - 1, MaxCol: g.Width() - 1}
	if sel != nil {
		bounds = sel.Clamp(g).Bounds()
	}

	keys := make(map[string]rune, len(p.Palette))
	for i, e := range p.Palette {
		if i < len(keyRunes) {
			keys[e.ID] = rune(keyRunes[i])
		} else {
			keys[e.ID] = overflowRune
		}
	}

	bw := bufio.NewWriter(w)
	numbers := p.Settings.Numbers()
	var line strings.Builder
	for row := bounds.MinRow; row <= bounds.MaxRow; row++ {
		line.Reset()
		for col := bounds.MinCol; col <= bounds.MaxCol; col++ {
			r, ok := keys[g.Cells[row][col].ColorID]
			if !ok {
				r = emptyRune
			}
			line.WriteRune(r)
		}
		if numbers {
			fmt.Fprintf(&line, " %d", g.Height()-row)
		}
		fmt.Fprintln(bw, line.String())
	}

	fmt.Fprintln(bw)
	for i, e := range p.Palette {
		key := overflowRune
		if i < len(keyRunes) {
			key = rune(keyRunes[i])
		}
		fmt.Fprintf(bw, "%c  %s  %s (%s)\n", key, e.Color, e.Name, e.Label())
	}
	return bw.Flush()
}

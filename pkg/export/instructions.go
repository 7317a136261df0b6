package export

import (
	"errors"
	"fmt"
	"strings"

	"stitchgrid/pkg/chart"
)

var ErrNoGrid = errors.New("export: project has no grid")

type Format string

const (
	Plain    Format = "plain"
	Markdown Format = "markdown"
)

type Order string

const (
	BottomToTop Order = "bottom-to-top"
	TopToBottom Order = "top-to-bottom"
)

type InstructionOptions struct {
	Order        Order
	RowNumbers   bool
	StitchCounts bool
	Format       Format
	// C2CNotation writes corner to corner charts as diagonals with
	// increase and decrease phases.
	C2CNotation bool
}

func DefaultInstructionOptions() InstructionOptions {
	return InstructionOptions{
		Order:        BottomToTop,
		RowNumbers:   true,
		StitchCounts: true,
		Format:       Plain,
		C2CNotation:  true,
	}
}

// Instructions is a written pattern and its totals.
type Instructions struct {
	Text          string
	RowCount      int
	TotalStitches int
	// ColorsUsed lists colour ids in the order they first appear.
	ColorsUsed []string
}

// segment is a run of identical colour ids.
type segment struct {
	colorID string
	count   int
}

// WrittenInstructions turns a grid chart into row by row text such as
// "Row 1: 3C1, C2, 2C3 (6 stitches)". Empty cells are skipped.
func WrittenInstructions(p *chart.Project, opts InstructionOptions) (*Instructions, error) {
	if p == nil || p.Grid == nil {
		return nil, ErrNoGrid
	}
	g := p.Grid
	w := &writer{format: opts.Format, abbr: abbreviations(p.Palette), seen: map[string]bool{}}

	rows := make([][]chart.Cell, len(g.Cells))
	copy(rows, g.Cells)
	if opts.Order != TopToBottom {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}

	w.header(p)

	total := 0
	if p.ChartType == chart.C2C && opts.C2CNotation {
		total = w.diagonals(rows, opts.RowNumbers)
	} else {
		for i, row := range rows {
			colors := make([]string, len(row))
			for j, c := range row {
				colors[j] = c.ColorID
			}
			count := stitches(colors)
			total += count

			var line strings.Builder
			if opts.RowNumbers {
				// a row keeps its number whichever way it is read
				n := i + 1
				if opts.Order != TopToBottom {
					n = len(rows) - i
				}
				line.WriteString(w.label(fmt.Sprintf("Row %d", n)))
			}
			line.WriteString(w.compress(colors))
			if opts.StitchCounts && count > 0 {
				fmt.Fprintf(&line, " (%d stitches)", count)
			}
			w.line(line.String())
		}
	}

	w.summary(g.Height(), total)
	return &Instructions{
		Text:          strings.Join(w.lines, "\n"),
		RowCount:      g.Height(),
		TotalStitches: total,
		ColorsUsed:    w.used,
	}, nil
}

type writer struct {
	format Format
	abbr   map[string]string
	lines  []string
	seen   map[string]bool
	used   []string
}

func (w *writer) line(s string) {
	w.lines = append(w.lines, s)
}

func (w *writer) label(s string) string {
	if w.format == Markdown {
		return "**" + s + ":** "
	}
	return s + ": "
}

func (w *writer) header(p *chart.Project) {
	if w.format == Markdown {
		w.line("# " + p.Name)
	} else {
		w.line(p.Name)
		w.line(strings.Repeat("-", len([]rune(p.Name))))
	}
	w.line("")
	w.line("Chart type: " + p.ChartType.Label())
	w.line(fmt.Sprintf("Size: %d x %d", p.Width(), p.Height()))
	w.line("")
	if w.format == Markdown {
		w.line("## Color Legend")
		w.line("")
		for _, e := range p.Palette {
			w.line(fmt.Sprintf("- **%s**: %s", w.abbr[e.ID], e.Name))
		}
		w.line("")
		w.line("## Instructions")
	} else {
		w.line("Color Legend:")
		for _, e := range p.Palette {
			w.line(fmt.Sprintf("  %s = %s", w.abbr[e.ID], e.Name))
		}
		w.line("")
		w.line("Instructions:")
	}
	w.line("")
}

func (w *writer) summary(rows, total int) {
	w.line("")
	prefix := "  "
	if w.format == Markdown {
		w.line("## Summary")
		w.line("")
		prefix = "- "
	} else {
		w.line("Summary:")
	}
	w.line(fmt.Sprintf("%sTotal rows: %d", prefix, rows))
	w.line(fmt.Sprintf("%sTotal stitches: %d", prefix, total))
	w.line(fmt.Sprintf("%sColors used: %d", prefix, len(w.used)))
}

// diagonals writes a C2C chart starting from the first cell of the last
// row: first the diagonals that start down the left edge, then those that
// start along the top edge. It returns the stitch total.
func (w *writer) diagonals(rows [][]chart.Cell, numbers bool) int {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	short := min(width, height)

	walk := func(r, c int) []string {
		var colors []string
		for ; r < height && c < width; r, c = r+1, c+1 {
			colors = append(colors, rows[r][c].ColorID)
		}
		return colors
	}

	n, total := 1, 0
	emit := func(colors []string) {
		phase := "Dec"
		if n <= short {
			phase = "Inc"
		}
		var line strings.Builder
		if numbers {
			line.WriteString(w.label(fmt.Sprintf("Row %d (%s)", n, phase)))
		}
		line.WriteString(w.compress(colors))
		w.line(line.String())
		total += stitches(colors)
		n++
	}

	for r := height - 1; r >= 0; r-- {
		emit(walk(r, 0))
	}
	for c := 1; c < width; c++ {
		emit(walk(0, c))
	}
	return total
}

// compress run-length encodes one row or diagonal, e.g. "3C1, C2".
func (w *writer) compress(colors []string) string {
	var segs []segment
	for _, id := range colors {
		if id != "" && !w.seen[id] {
			w.seen[id] = true
			w.used = append(w.used, id)
		}
		if n := len(segs); n > 0 && segs[n-1].colorID == id {
			segs[n-1].count++
			continue
		}
		segs = append(segs, segment{colorID: id, count: 1})
	}

	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if s.colorID == "" {
			continue
		}
		abbr, ok := w.abbr[s.colorID]
		if !ok {
			abbr = "?"
		}
		if s.count > 1 {
			parts = append(parts, fmt.Sprintf("%d%s", s.count, abbr))
		} else {
			parts = append(parts, abbr)
		}
	}
	return strings.Join(parts, ", ")
}

func stitches(colors []string) int {
	n := 0
	for _, id := range colors {
		if id != "" {
			n++
		}
	}
	return n
}

// abbreviations labels each palette entry by its abbreviation, falling
// back to the first three letters of its name.
func abbreviations(p chart.Palette) map[string]string {
	m := make(map[string]string, len(p))
	for _, e := range p {
		if e.Abbreviation != "" {
			m[e.ID] = e.Abbreviation
			continue
		}
		name := []rune(e.Name)
		if len(name) > 3 {
			name = name[:3]
		}
		m[e.ID] = string(name)
	}
	return m
}

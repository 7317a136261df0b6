package chart

// Selection is a rectangle given by two inclusive, unordered corners.
type Selection struct {
	StartRow int `json:"startRow"`
	StartCol int `json:"startCol"`
	EndRow   int `json:"endRow"`
	EndCol   int `json:"endCol"`
}

// Rect is a normalised selection.
type Rect struct {
	MinRow, MinCol, MaxRow, MaxCol int
}

func (s Selection) Bounds() Rect {
	return Rect{
		MinRow: min(s.StartRow, s.EndRow),
		MinCol: min(s.StartCol, s.EndCol),
		MaxRow: max(s.StartRow, s.EndRow),
		MaxCol: max(s.StartCol, s.EndCol),
	}
}

func (s Selection) Width() int {
	b := s.Bounds()
	return b.MaxCol - b.MinCol + 1
}

func (s Selection) Height() int {
	b := s.Bounds()
	return b.MaxRow - b.MinRow + 1
}

func (s Selection) Contains(row, col int) bool {
	b := s.Bounds()
	return row >= b.MinRow && row <= b.MaxRow && col >= b.MinCol && col <= b.MaxCol
}

// Clamp pulls both corners inside the grid.
func (s Selection) Clamp(g *Grid) Selection {
	clampRow := func(r int) int { return max(0, min(g.Height()-1, r)) }
	clampCol := func(c int) int { return max(0, min(g.Width()-1, c)) }
	return Selection{
		StartRow: clampRow(s.StartRow),
		StartCol: clampCol(s.StartCol),
		EndRow:   clampRow(s.EndRow),
		EndCol:   clampCol(s.EndCol),
	}
}

// Clipboard is a block of cells detached from any grid.
type Clipboard struct {
	Cells [][]Cell `json:"cells"`
}

func (c *Clipboard) Width() int {
	if c == nil || len(c.Cells) == 0 {
		return 0
	}
	return len(c.Cells[0])
}

func (c *Clipboard) Height() int {
	if c == nil {
		return 0
	}
	return len(c.Cells)
}

// Copy deep-copies the selected cells.
func (g *Grid) Copy(sel Selection) *Clipboard {
	b := sel.Clamp(g).Bounds()
	cells := make([][]Cell, 0, b.MaxRow-b.MinRow+1)
	for row := b.MinRow; row <= b.MaxRow; row++ {
		line := make([]Cell, b.MaxCol-b.MinCol+1)
		copy(line, g.Cells[row][b.MinCol:b.MaxCol+1])
		cells = append(cells, line)
	}
	return &Clipboard{Cells: cells}
}

// Paste writes the clipboard with its top-left at (row, col). Cells that
// would land outside the grid are dropped. It returns the number written.
func (g *Grid) Paste(clip *Clipboard, row, col int) int {
	n := 0
	for r := 0; r < clip.Height(); r++ {
		for c := 0; c < len(clip.Cells[r]); c++ {
			if g.Set(row+r, col+c, clip.Cells[r][c]) {
				n++
			}
		}
	}
	return n
}

// FillRect sets the colour of every selected cell. Symbols are kept.
func (g *Grid) FillRect(sel Selection, colorID string) int {
	b := sel.Clamp(g).Bounds()
	n := 0
	for row := b.MinRow; row <= b.MaxRow; row++ {
		for col := b.MinCol; col <= b.MaxCol; col++ {
			g.Cells[row][col].ColorID = colorID
			n++
		}
	}
	return n
}

// MirrorH reflects the selection left to right.
func (g *Grid) MirrorH(sel Selection) {
	b := sel.Clamp(g).Bounds()
	src := g.Copy(sel)
	for row := b.MinRow; row <= b.MaxRow; row++ {
		for col := b.MinCol; col <= b.MaxCol; col++ {
			g.Cells[row][col] = src.Cells[row-b.MinRow][b.MaxCol-col]
		}
	}
}

// MirrorV reflects the selection top to bottom.
func (g *Grid) MirrorV(sel Selection) {
	b := sel.Clamp(g).Bounds()
	src := g.Copy(sel)
	for row := b.MinRow; row <= b.MaxRow; row++ {
		for col := b.MinCol; col <= b.MaxCol; col++ {
			g.Cells[row][col] = src.Cells[b.MaxRow-row][col-b.MinCol]
		}
	}
}

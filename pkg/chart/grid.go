package chart

import "encoding/json"

// Grid dimensions are bounded on both axes.
const (
	MinDimension = 1
	MaxDimension = 1000
)

// Cell is one grid position. An empty id means "none".
type Cell struct {
	ColorID  string
	SymbolID string
}

type cellJSON struct {
	ColorID  *string `json:"colorId"`
	SymbolID *string `json:"symbolId"`
}

func (c Cell) MarshalJSON() ([]byte, error) {
	var out cellJSON
	if c.ColorID != "" {
		out.ColorID = &c.ColorID
	}
	if c.SymbolID != "" {
		out.SymbolID = &c.SymbolID
	}
	return json.Marshal(out)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var in cellJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Cell{}
	if in.ColorID != nil {
		c.ColorID = *in.ColorID
	}
	if in.SymbolID != nil {
		c.SymbolID = *in.SymbolID
	}
	return nil
}

// Empty reports whether the cell carries neither a colour nor a symbol.
func (c Cell) Empty() bool {
	return c.ColorID == "" && c.SymbolID == ""
}

// Point addresses a cell.
type Point struct {
	Row, Col int
}

// Grid is a rectangular matrix of cells. Every row holds exactly Width() cells.
type Grid struct {
	Cells [][]Cell `json:"cells"`
}

func ValidDimensions(width, height int) bool {
	return width >= MinDimension && width <= MaxDimension &&
		height >= MinDimension && height <= MaxDimension
}

func clampDimension(n int) int {
	return max(MinDimension, min(MaxDimension, n))
}

// NewGrid creates an empty grid; dimensions are clamped into bounds.
func NewGrid(width, height int) *Grid {
	width, height = clampDimension(width), clampDimension(height)
	cells := make([][]Cell, height)
	for row := range cells {
		cells[row] = make([]Cell, width)
	}
	return &Grid{Cells: cells}
}

func (g *Grid) Width() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

func (g *Grid) Height() int {
	return len(g.Cells)
}

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height() && col >= 0 && col < g.Width()
}

func (g *Grid) At(row, col int) (Cell, bool) {
	if !g.InBounds(row, col) {
		return Cell{}, false
	}
	return g.Cells[row][col], true
}

// Set replaces the whole cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, cell Cell) bool {
	if !g.InBounds(row, col) {
		return false
	}
	g.Cells[row][col] = cell
	return true
}

// Paint sets the colour of a cell and leaves its symbol overlay alone.
func (g *Grid) Paint(row, col int, colorID string) bool {
	if !g.InBounds(row, col) {
		return false
	}
	g.Cells[row][col].ColorID = colorID
	return true
}

func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	cells := make([][]Cell, len(g.Cells))
	for row := range g.Cells {
		cells[row] = make([]Cell, len(g.Cells[row]))
		copy(cells[row], g.Cells[row])
	}
	return &Grid{Cells: cells}
}

// Equal compares cell content and shape.
func (g *Grid) Equal(other *Grid) bool {
	if g.Height() != other.Height() || g.Width() != other.Width() {
		return false
	}
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if g.Cells[row][col] != other.Cells[row][col] {
				return false
			}
		}
	}
	return true
}

// Resize crops or pads to the new dimensions, anchored at the top-left.
func (g *Grid) Resize(width, height int) bool {
	if !ValidDimensions(width, height) {
		return false
	}
	cells := make([][]Cell, height)
	for row := range cells {
		cells[row] = make([]Cell, width)
		if row < len(g.Cells) {
			copy(cells[row], g.Cells[row])
		}
	}
	g.Cells = cells
	return true
}

// Normalize forces the matrix into width x height, keeping overlapping content.
// Used on data that did not come from this package (imports, older saves).
func (g *Grid) Normalize(width, height int) {
	width, height = clampDimension(width), clampDimension(height)
	if g.Height() == height {
		ok := true
		for _, r := range g.Cells {
			if len(r) != width {
				ok = false
				break
			}
		}
		if ok {
			return
		}
	}
	g.Resize(width, height)
}

func (g *Grid) InsertRow(index int) bool {
	if g.Height() >= MaxDimension {
		return false
	}
	width := g.Width()
	index = max(0, min(g.Height(), index))
	g.Cells = append(g.Cells, nil)
	copy(g.Cells[index+1:], g.Cells[index:])
	g.Cells[index] = make([]Cell, width)
	return true
}

func (g *Grid) DeleteRow(index int) bool {
	if g.Height() <= MinDimension || index < 0 || index >= g.Height() {
		return false
	}
	g.Cells = append(g.Cells[:index], g.Cells[index+1:]...)
	return true
}

func (g *Grid) InsertColumn(index int) bool {
	if g.Width() >= MaxDimension {
		return false
	}
	index = max(0, min(g.Width(), index))
	for row := range g.Cells {
		r := append(g.Cells[row], Cell{})
		copy(r[index+1:], r[index:])
		r[index] = Cell{}
		g.Cells[row] = r
	}
	return true
}

func (g *Grid) DeleteColumn(index int) bool {
	if g.Width() <= MinDimension || index < 0 || index >= g.Width() {
		return false
	}
	for row := range g.Cells {
		g.Cells[row] = append(g.Cells[row][:index], g.Cells[row][index+1:]...)
	}
	return true
}

// ReplaceColor rewrites every reference to from. It returns the number of cells touched.
func (g *Grid) ReplaceColor(from, to string) int {
	n := 0
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if g.Cells[row][col].ColorID == from {
				g.Cells[row][col].ColorID = to
				n++
			}
		}
	}
	return n
}

// CountColor returns how many cells use colorID.
func (g *Grid) CountColor(colorID string) int {
	n := 0
	for _, r := range g.Cells {
		for _, c := range r {
			if c.ColorID == colorID {
				n++
			}
		}
	}
	return n
}

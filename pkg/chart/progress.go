package chart

type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
	Diagonal   Direction = "diagonal"
)

func (d Direction) Valid() bool {
	return d == Horizontal || d == Vertical || d == Diagonal
}

// Corner is where a diagonal (C2C) traversal starts.
type Corner string

const (
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
)

func (c Corner) Valid() bool {
	switch c {
	case BottomLeft, BottomRight, TopLeft, TopRight:
		return true
	}
	return false
}

type DarkenMode string

const (
	DarkenDone          DarkenMode = "done"
	DarkenTodo          DarkenMode = "todo"
	DarkenExceptCurrent DarkenMode = "except-current"
	DarkenNone          DarkenMode = "none"
)

func (m DarkenMode) Valid() bool {
	switch m {
	case DarkenDone, DarkenTodo, DarkenExceptCurrent, DarkenNone:
		return true
	}
	return false
}

// CellState classifies a cell relative to the progress cursor.
type CellState int

const (
	StateTodo CellState = iota
	StateCurrent
	StateDone
)

// Progress is the worked/unworked cursor over rows, columns or diagonals.
type Progress struct {
	Direction         Direction  `json:"direction"`
	DiagonalDirection Corner     `json:"diagonalDirection"`
	CurrentRow        int        `json:"currentRow"`
	DarkenMode        DarkenMode `json:"darkenMode"`
	Brightness        int        `json:"brightness"`
}

func NewProgress() *Progress {
	return &Progress{
		Direction:         Horizontal,
		DiagonalDirection: BottomLeft,
		CurrentRow:        0,
		DarkenMode:        DarkenDone,
		Brightness:        50,
	}
}

func (p *Progress) Clone() *Progress {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// MaxPosition is the last cursor position for the current direction.
func (p *Progress) MaxPosition(width, height int) int {
	switch p.Direction {
	case Vertical:
		return max(0, width-1)
	case Diagonal:
		return max(0, width+height-2)
	default:
		return max(0, height-1)
	}
}

// SetRow moves the cursor, clamped into [0, MaxPosition].
func (p *Progress) SetRow(n, width, height int) {
	p.CurrentRow = max(0, min(p.MaxPosition(width, height), n))
}

func (p *Progress) Next(width, height int) { p.SetRow(p.CurrentRow+1, width, height) }
func (p *Progress) Prev(width, height int) { p.SetRow(p.CurrentRow-1, width, height) }

// SetDirection switches the traversal axis. The cursor restarts at 0 on change.
func (p *Progress) SetDirection(d Direction) {
	if !d.Valid() || d == p.Direction {
		return
	}
	p.Direction = d
	p.CurrentRow = 0
}

// Clamp repairs the cursor and settings after the grid changed shape or
// the record came from outside.
func (p *Progress) Clamp(width, height int) {
	if !p.Direction.Valid() {
		p.Direction = Horizontal
	}
	if !p.DiagonalDirection.Valid() {
		p.DiagonalDirection = BottomLeft
	}
	if !p.DarkenMode.Valid() {
		p.DarkenMode = DarkenDone
	}
	p.Brightness = max(0, min(100, p.Brightness))
	p.SetRow(p.CurrentRow, width, height)
}

// Position maps a cell onto the traversal axis. Array row 0 is the top of
// the chart and work starts at the bottom, so horizontal position 0 is the
// last array row.
func (p *Progress) Position(row, col, width, height int) int {
	fromBottom := height - 1 - row
	fromRight := width - 1 - col
	switch p.Direction {
	case Vertical:
		return col
	case Diagonal:
		switch p.DiagonalDirection {
		case BottomRight:
			return fromBottom + fromRight
		case TopLeft:
			return row + col
		case TopRight:
			return row + fromRight
		default:
			return fromBottom + col
		}
	default:
		return fromBottom
	}
}

func (p *Progress) State(row, col, width, height int) CellState {
	pos := p.Position(row, col, width, height)
	switch {
	case pos < p.CurrentRow:
		return StateDone
	case pos == p.CurrentRow:
		return StateCurrent
	default:
		return StateTodo
	}
}

// Darkened reports whether cells in state s are drawn dimmed.
func (p *Progress) Darkened(s CellState) bool {
	switch p.DarkenMode {
	case DarkenDone:
		return s == StateDone
	case DarkenTodo:
		return s == StateTodo
	case DarkenExceptCurrent:
		return s != StateCurrent
	}
	return false
}

// Percent is the share of positions reached, counting the current one,
// rounded half up. The last position reads 100.
func (p *Progress) Percent(width, height int) int {
	total := p.MaxPosition(width, height) + 1
	return ((p.CurrentRow+1)*200 + total) / (2 * total)
}

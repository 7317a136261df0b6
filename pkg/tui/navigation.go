package tui

import "stitchgrid/pkg/editor"

func (m *Model) handleNavigation(key string, speed int) {
	if m.panMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

// handlePan shifts the chart under a fixed cursor, one cell per step.
func (m *Model) handlePan(key string, speed int) {
	w, h := m.ed.Viewport().CellSize()
	step := float64(speed)
	switch key {
	case "h", "left", "H", "shift+left":
		m.ed.Pan(w*step, 0)
	case "l", "right", "L", "shift+right":
		m.ed.Pan(-w*step, 0)
	case "k", "up", "K", "shift+up":
		m.ed.Pan(0, h*step)
	case "j", "down", "J", "shift+down":
		m.ed.Pan(0, -h*step)
	}
}

func (m *Model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorCol -= speed
	case "l", "right", "L", "shift+right":
		m.cursorCol += speed
	case "k", "up", "K", "shift+up":
		m.cursorRow -= speed
	case "j", "down", "J", "shift+down":
		m.cursorRow += speed
	}
	m.ensureCursorInBounds()
	if m.ed.Dragging() {
		m.ed.PointerMove(m.cursorPoint())
	}
}

func (m *Model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func isNavigationKey(key string) bool {
	switch key {
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}

// ensureCursorInBounds keeps the cursor on the chart and on screen.
func (m *Model) ensureCursorInBounds() {
	p := m.ed.Project()
	if p == nil {
		m.cursorRow, m.cursorCol = 0, 0
		return
	}
	m.cursorRow = max(0, min(p.Height()-1, m.cursorRow))
	m.cursorCol = max(0, min(p.Width()-1, m.cursorCol))
	m.ensureCursorVisible()
}

// ensureCursorVisible pans just far enough to bring the cursor cell into
// the canvas.
func (m *Model) ensureCursorVisible() {
	if m.ed.Project() == nil {
		return
	}
	v := m.ed.Viewport()
	x, y := v.CellOrigin(m.cursorRow, m.cursorCol)
	w, h := v.CellSize()
	cw, ch := m.canvasSize()
	var dx, dy float64
	switch {
	case x < 0:
		dx = -x
	case x+w > float64(cw):
		dx = float64(cw) - (x + w)
	}
	switch {
	case y < 0:
		dy = -y
	case y+h > float64(ch):
		dy = float64(ch) - (y + h)
	}
	m.ed.Pan(dx, dy)
}

// cursorPoint is the canvas position at the middle of the cursor cell.
func (m Model) cursorPoint() (float64, float64) {
	v := m.ed.Viewport()
	x, y := v.CellOrigin(m.cursorRow, m.cursorCol)
	w, h := v.CellSize()
	return x + w/2, y + h/2
}

// cursorToScreen moves the cursor to the cell under a canvas position.
func (m *Model) cursorToScreen(x, y float64) {
	p := m.ed.Project()
	if p == nil {
		return
	}
	cell := m.ed.Viewport().CellAt(x, y)
	if cell.Row < 0 || cell.Col < 0 || cell.Row >= p.Height() || cell.Col >= p.Width() {
		return
	}
	m.cursorRow, m.cursorCol = cell.Row, cell.Col
}

// togglePan switches the arrow keys between moving the cursor and moving
// the chart. The pan tool stays active meanwhile so mouse drags pan too.
func (m *Model) togglePan() {
	if m.panMode {
		m.panMode = false
		m.ed.SetTool(m.panTool)
		return
	}
	m.panMode = true
	m.panTool = m.ed.Tool()
	if m.panTool == editor.ToolPan {
		m.panTool = editor.ToolDraw
	}
	m.ed.SetTool(editor.ToolPan)
}

// applyTool presses the active tool at the cursor. Strokes and selections
// stay open while the cursor moves and close on the next press.
func (m *Model) applyTool() {
	x, y := m.cursorPoint()
	if m.ed.Dragging() {
		m.ed.PointerUp(x, y)
		return
	}
	m.ed.PointerDown(x, y)
	if !m.holdsGesture(m.ed.Tool()) {
		m.ed.PointerUp(x, y)
	}
}

func (m Model) holdsGesture(t editor.Tool) bool {
	switch t {
	case editor.ToolSelect:
		return true
	case editor.ToolDraw, editor.ToolErase:
		return m.isGrid()
	}
	return false
}

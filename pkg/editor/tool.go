package editor

import (
	"fmt"
	"strings"
)

type Tool int

const (
	ToolDraw Tool = iota
	ToolErase
	ToolFill
	ToolSelect
	ToolEyedropper
	ToolPan
)

var toolNames = [...]string{"draw", "erase", "fill", "select", "eyedropper", "pan"}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

func ParseTool(s string) (Tool, error) {
	for i, name := range toolNames {
		if strings.EqualFold(s, name) {
			return Tool(i), nil
		}
	}
	return ToolDraw, fmt.Errorf("unknown tool %q", s)
}

// session is the state of one pointer-down to pointer-up sequence.
type session struct {
	tool     Tool
	start    point
	last     point
	painted  map[cellKey]bool
	pushed   bool
	symbolID string
}

type point struct{ x, y float64 }

type cellKey struct{ row, col int }

// SetTool switches the active tool. Any gesture in progress ends first.
func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.endSession()
	e.tool = t
	e.viewChanged()
}

// Dragging reports whether a pointer gesture is in progress.
func (e *Editor) Dragging() bool { return e.session != nil }

// PointerDown starts a gesture at a screen position.
func (e *Editor) PointerDown(x, y float64) {
	if e.project == nil {
		return
	}
	e.endSession()
	s := &session{tool: e.tool, start: point{x, y}, last: point{x, y}}
	e.session = s
	if s.tool == ToolPan {
		return
	}
	e.surface.down(e, s, x, y)
}

// PointerMove continues the current gesture. Moves without a gesture are ignored.
func (e *Editor) PointerMove(x, y float64) {
	s := e.session
	if s == nil || e.project == nil {
		return
	}
	if s.tool == ToolPan {
		e.Pan(x-s.last.x, y-s.last.y)
	} else {
		e.surface.move(e, s, x, y)
	}
	s.last = point{x, y}
}

// PointerUp ends the current gesture.
func (e *Editor) PointerUp(x, y float64) {
	s := e.session
	if s == nil {
		return
	}
	e.session = nil
	if s.tool != ToolPan && e.project != nil {
		e.surface.up(e, s, x, y)
	}
}

// PointerCancel ends the current gesture without its release action. Use it
// when the pointer leaves the canvas or the platform cancels the touch.
func (e *Editor) PointerCancel() {
	e.endSession()
}

func (e *Editor) endSession() {
	e.session = nil
}

// Pan shifts the view by a screen delta.
func (e *Editor) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	e.view.PanX += dx
	e.view.PanY += dy
	e.viewChanged()
}

func (e *Editor) SetPan(x, y float64) {
	e.view.PanX, e.view.PanY = x, y
	e.viewChanged()
}

func (e *Editor) SetZoom(z float64) {
	z = ClampZoom(z)
	if z == e.view.Zoom {
		return
	}
	e.view.Zoom = z
	e.viewChanged()
}

// Wheel adds one zoom step per notch; positive notches zoom in.
func (e *Editor) Wheel(notches int) {
	e.SetZoom(e.view.Zoom + float64(notches)*ZoomStep)
}

// Pinch multiplies the zoom by factor.
func (e *Editor) Pinch(factor float64) {
	if factor <= 0 {
		return
	}
	e.SetZoom(e.view.Zoom * factor)
}

// ResetView restores the initial zoom and pan.
func (e *Editor) ResetView() {
	e.view = e.defaultView
	e.viewChanged()
}

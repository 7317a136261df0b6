package editor

import "stitchgrid/pkg/chart"

// DefaultHistoryLimit is how many undo steps are kept.
const DefaultHistoryLimit = 50

// History holds whole-project snapshots for undo and redo.
type History struct {
	limit     int
	undoStack []*chart.Project
	redoStack []*chart.Project
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records the state before a mutation. The snapshot is owned by the
// history from here on. A new mutation drops every redo step.
func (h *History) Push(snapshot *chart.Project) {
	h.undoStack = h.trim(append(h.undoStack, snapshot))
	h.redoStack = nil
}

// Undo swaps current for the most recent snapshot. It returns false when
// there is nothing to undo.
func (h *History) Undo(current *chart.Project) (*chart.Project, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}

	lastIndex := len(h.undoStack) - 1
	prev := h.undoStack[lastIndex]
	h.undoStack[lastIndex] = nil
	h.undoStack = h.undoStack[:lastIndex]

	h.redoStack = h.trim(append(h.redoStack, current.Clone()))
	return prev, true
}

func (h *History) Redo(current *chart.Project) (*chart.Project, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}

	lastIndex := len(h.redoStack) - 1
	next := h.redoStack[lastIndex]
	h.redoStack[lastIndex] = nil
	h.redoStack = h.redoStack[:lastIndex]

	h.undoStack = h.trim(append(h.undoStack, current.Clone()))
	return next, true
}

func (h *History) trim(stack []*chart.Project) []*chart.Project {
	if over := len(stack) - h.limit; over > 0 {
		clear(stack[:over])
		stack = stack[over:]
	}
	return stack
}

func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) {
	return len(h.undoStack), len(h.redoStack)
}

// Oldest is the earliest snapshot still held, or nil.
func (h *History) Oldest() *chart.Project {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[0]
}

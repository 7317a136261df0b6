package editor

import "stitchgrid/pkg/chart"

// Progress operations move a cursor, not chart content, so they record no
// undo history. They still dirty the project so the cursor is saved.

func (e *Editor) progress() *chart.Progress {
	if e.project == nil {
		return nil
	}
	return e.project.Progress
}

func (e *Editor) progressChanged() {
	e.project.Touch(e.now())
	e.dirty = true
	e.revision++
	e.emit(ViewChanged)
}

// InitProgressTracker starts tracking from the first row.
func (e *Editor) InitProgressTracker() bool {
	if e.project == nil {
		return false
	}
	e.project.Progress = chart.NewProgress()
	e.progressChanged()
	return true
}

func (e *Editor) ClearProgressTracker() bool {
	if e.project == nil || e.project.Progress == nil {
		return false
	}
	e.project.Progress = nil
	e.progressChanged()
	return true
}

func (e *Editor) SetProgressRow(n int) bool {
	p := e.progress()
	if p == nil {
		return false
	}
	p.SetRow(n, e.project.Width(), e.project.Height())
	e.progressChanged()
	return true
}

func (e *Editor) NextProgressRow() bool {
	p := e.progress()
	if p == nil {
		return false
	}
	return e.SetProgressRow(p.CurrentRow + 1)
}

func (e *Editor) PrevProgressRow() bool {
	p := e.progress()
	if p == nil {
		return false
	}
	return e.SetProgressRow(p.CurrentRow - 1)
}

// ProgressPatch changes the set fields of the tracker.
type ProgressPatch struct {
	Direction         *chart.Direction
	DiagonalDirection *chart.Corner
	DarkenMode        *chart.DarkenMode
	Brightness        *int
}

// UpdateProgressSettings applies patch. A direction change restarts the cursor at 0.
func (e *Editor) UpdateProgressSettings(patch ProgressPatch) bool {
	p := e.progress()
	if p == nil {
		return false
	}
	if patch.Direction != nil {
		p.SetDirection(*patch.Direction)
	}
	if patch.DiagonalDirection != nil && patch.DiagonalDirection.Valid() {
		p.DiagonalDirection = *patch.DiagonalDirection
	}
	if patch.DarkenMode != nil && patch.DarkenMode.Valid() {
		p.DarkenMode = *patch.DarkenMode
	}
	if patch.Brightness != nil {
		p.Brightness = *patch.Brightness
	}
	p.Clamp(e.project.Width(), e.project.Height())
	e.progressChanged()
	return true
}

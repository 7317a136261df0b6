package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/editor"
	"stitchgrid/pkg/export"
	"stitchgrid/pkg/symbols"
)

func (m Model) handleNormalKey(msg tea.KeyMsg) Model {
	key := msg.String()
	if isNavigationKey(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return m
	}
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "esc":
		switch {
		case m.ed.Dragging():
			m.ed.PointerUp(m.cursorPoint())
		case m.panMode:
			m.togglePan()
		case m.isGrid():
			m.ed.ClearSelection()
		default:
			m.ed.SelectSymbol("")
		}
	case "q", "ctrl+c":
		m.requestQuit()
	case "?":
		m.help = true
		m.helpScroll = 0

	case "d":
		m.setTool(editor.ToolDraw)
	case "e":
		m.setTool(editor.ToolErase)
	case "f":
		m.setTool(editor.ToolFill)
	case "s":
		m.setTool(editor.ToolSelect)
	case "i":
		m.setTool(editor.ToolEyedropper)
	case " ", "space":
		m.togglePan()
	case "enter":
		m.applyTool()

	case "u", "ctrl+z":
		if !m.ed.Undo() {
			m.errorMessage = "Nothing to undo"
		}
		m.ensureCursorInBounds()
	case "U", "ctrl+y":
		if !m.ed.Redo() {
			m.errorMessage = "Nothing to redo"
		}
		m.ensureCursorInBounds()
	case "ctrl+s":
		m.save()

	case "+", "=":
		m.ed.Wheel(1)
		m.ensureCursorVisible()
	case "-":
		m.ed.Wheel(-1)
		m.ensureCursorVisible()
	case "0":
		m.ed.ResetView()
		m.ensureCursorVisible()
	case "#":
		m.ed.ToggleShowNumbers()

	case "tab":
		m.ed.CycleColor(1)
	case "shift+tab":
		m.ed.CycleColor(-1)
	case ",":
		m.ed.SetActiveSymbol(symbols.Next(m.ed.ActiveSymbol(), -1).ID)
	case ".":
		m.ed.SetActiveSymbol(symbols.Next(m.ed.ActiveSymbol(), 1).ID)
	case "a":
		m.startInput(InputAddColor, "")
	case "A":
		m.colorFromClipboard()
	case "ctrl+x":
		if _, ok := m.ed.Project().Palette.Find(m.ed.ActiveColor()); !ok {
			m.errorMessage = "No active colour"
		} else if m.opts.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmRemoveColor
		} else {
			m.removeActiveColor()
		}

	case "[":
		m.progressStep(-1)
	case "]":
		m.progressStep(1)
	case "P":
		if m.ed.Project().Progress == nil {
			m.ed.InitProgressTracker()
			m.successMessage = "Progress tracking on"
		} else {
			m.ed.ClearProgressTracker()
			m.successMessage = "Progress tracking off"
		}
	case "D":
		m.cycleProgressDirection()

	case "n":
		if m.opts.Confirmations && m.ed.Dirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmNewChart
		} else {
			m.leaveChart()
		}
	case "N":
		m.startInput(InputRename, m.ed.Project().Name)
	case "S":
		m.startExport(InputSavePNG, ".png")
	case "T":
		m.startExport(InputSaveVisualTXT, ".txt")
	case "E":
		m.startExport(InputSaveInstructions, ".instructions.txt")
	case "w":
		m.startExport(InputSaveJSON, ".json")
	case "y":
		m.copyInstructions()

	default:
		if m.isGrid() {
			m.handleGridKey(key)
		} else {
			m.handleFreeformKey(key)
		}
	}
	return m
}

func (m *Model) handleGridKey(key string) {
	p := m.ed.Project()
	switch key {
	case "t":
		sym := m.ed.ActiveSymbol()
		if sym == "" {
			sym = symbols.All()[0].ID
		}
		cell, _ := p.Grid.At(m.cursorRow, m.cursorCol)
		if cell.SymbolID == sym {
			sym = ""
		}
		m.ed.SetCellWithSymbol(m.cursorRow, m.cursorCol, cell.ColorID, sym)
	case "delete", "backspace":
		if !m.ed.RemoveSelection() {
			m.errorMessage = "Nothing selected"
		}
	case "c":
		if m.ed.CopySelection() {
			clip := m.ed.Clipboard()
			m.successMessage = fmt.Sprintf("Copied %dx%d", clip.Width(), clip.Height())
		} else {
			m.errorMessage = "Nothing selected"
		}
	case "p":
		m.pasteAtCursor()
	case "F":
		if !m.ed.FillSelection(m.ed.ActiveColor()) {
			m.errorMessage = "Nothing selected"
		}
	case "m":
		if !m.ed.MirrorSelectionH() {
			m.errorMessage = "Nothing selected"
		}
	case "M":
		if !m.ed.MirrorSelectionV() {
			m.errorMessage = "Nothing selected"
		}
	case "Y":
		m.copyTextChart()
	case "z":
		m.startInput(InputResize, fmt.Sprintf("%dx%d", p.Width(), p.Height()))
	case "o":
		m.ed.InsertRow(m.cursorRow)
	case "O":
		m.ed.InsertColumn(m.cursorCol)
	case "x":
		if !m.ed.DeleteRow(m.cursorRow) {
			m.errorMessage = "Cannot delete the last row"
		}
		m.ensureCursorInBounds()
	case "X":
		if !m.ed.DeleteColumn(m.cursorCol) {
			m.errorMessage = "Cannot delete the last column"
		}
		m.ensureCursorInBounds()
	}
}

func (m *Model) handleFreeformKey(key string) {
	f := m.ed.Project().Freeform
	sel := m.ed.SelectedSymbol()
	_, placed := f.Symbol(sel)
	switch key {
	case "delete", "backspace":
		if !m.ed.RemovePlacedSymbol(sel) {
			m.errorMessage = "No symbol selected"
		}
	case "r", "R":
		if placed == nil {
			m.errorMessage = "No symbol selected"
			return
		}
		step := chart.RotateStep
		if key == "R" {
			step = -step
		}
		m.ed.RotatePlacedSymbol(sel, placed.Rotation+step)
	case "<", ">":
		if placed == nil {
			m.errorMessage = "No symbol selected"
			return
		}
		step := chart.ScaleStep
		if key == "<" {
			step = -step
		}
		m.ed.ScalePlacedSymbol(sel, placed.Scale+step)
	case "g":
		m.cycleLayer()
	case "G":
		if l := m.ed.AddLayer(); l != nil {
			m.ed.SetActiveLayer(l.ID)
			m.successMessage = "Added " + l.Name
		}
	case "v":
		if l := f.ActiveLayer(); l != nil {
			visible := !l.Visible
			m.ed.UpdateLayer(l.ID, editor.LayerPatch{Visible: &visible})
		}
	case "V":
		if l := f.ActiveLayer(); l != nil {
			locked := !l.Locked
			m.ed.UpdateLayer(l.ID, editor.LayerPatch{Locked: &locked})
		}
	case "ctrl+g":
		if l := f.ActiveLayer(); l != nil && !m.ed.RemoveLayer(l.ID) {
			m.errorMessage = "Cannot remove the last layer"
		}
	}
}

func (m *Model) setTool(t editor.Tool) {
	if m.panMode {
		m.panMode = false
	}
	m.ed.SetTool(t)
}

// pasteAtCursor anchors the clipboard's top-left corner on the cursor.
func (m *Model) pasteAtCursor() {
	if m.ed.Clipboard() == nil {
		m.errorMessage = "Clipboard is empty"
		return
	}
	m.ed.SetSelection(chart.Selection{
		StartRow: m.cursorRow, StartCol: m.cursorCol,
		EndRow: m.cursorRow, EndCol: m.cursorCol,
	})
	if m.ed.PasteSelection() {
		m.successMessage = "Pasted"
	}
}

func (m *Model) removeActiveColor() {
	e, ok := m.ed.Project().Palette.Find(m.ed.ActiveColor())
	if !ok {
		return
	}
	if !m.ed.RemoveColor(e.ID) {
		m.errorMessage = "A chart needs at least one colour"
		return
	}
	m.successMessage = "Removed " + e.Name
}

func (m *Model) addColor(text string) bool {
	hex, name := splitColorInput(text)
	entry, err := m.ed.AddColor(hex, name)
	if err != nil {
		m.errorMessage = err.Error()
		return false
	}
	m.ed.SetActiveColor(entry.ID)
	m.successMessage = fmt.Sprintf("Added %s %s", entry.Color, entry.Name)
	return true
}

func (m *Model) progressStep(step int) {
	if m.ed.Project().Progress == nil {
		m.errorMessage = "Progress tracking is off (P to start)"
		return
	}
	if step > 0 {
		m.ed.NextProgressRow()
	} else {
		m.ed.PrevProgressRow()
	}
}

var progressDirections = []chart.Direction{chart.Horizontal, chart.Vertical, chart.Diagonal}

func (m *Model) cycleProgressDirection() {
	pr := m.ed.Project().Progress
	if pr == nil {
		m.errorMessage = "Progress tracking is off (P to start)"
		return
	}
	next := progressDirections[0]
	for i, d := range progressDirections {
		if d == pr.Direction {
			next = progressDirections[(i+1)%len(progressDirections)]
		}
	}
	m.ed.UpdateProgressSettings(editor.ProgressPatch{Direction: &next})
	m.successMessage = fmt.Sprintf("Tracking %s", next)
}

func (m *Model) cycleLayer() {
	f := m.ed.Project().Freeform
	if len(f.Layers) == 0 {
		return
	}
	next := f.Layers[0]
	for i, l := range f.Layers {
		if l.ID == f.ActiveLayerID {
			next = f.Layers[(i+1)%len(f.Layers)]
		}
	}
	m.ed.SetActiveLayer(next.ID)
}

// leaveChart saves the open chart and returns to the picker, or straight
// to the name prompt when there is no picker.
func (m *Model) leaveChart() {
	if m.ed.Dirty() && m.store != nil {
		if err := m.ed.Save(m.ctx); err != nil {
			m.mode = ModeNormal
			m.errorMessage = fmt.Sprintf("Error saving: %s", err)
			return
		}
	}
	m.ed.Close()
	m.panMode = false
	m.cursorRow, m.cursorCol = 0, 0
	if m.opts.StartMenu && m.store != nil {
		m.mode = ModeStartup
		m.refreshProjects()
		return
	}
	m.startInput(InputNewProject, "")
	m.fromStartup = false
}

func (m *Model) startExport(op InputOp, ext string) {
	m.startInput(op, filepath.Join(m.opts.ExportDir, export.FileName(m.ed.Project(), ext)))
}

// selectionPtr is the active grid selection, or nil.
func (m Model) selectionPtr() *chart.Selection {
	sel, ok := m.ed.Selection()
	if !ok {
		return nil
	}
	return &sel
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

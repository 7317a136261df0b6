package tui

import (
	"fmt"
	"strings"

	"stitchgrid/pkg/symbols"
)

func (m Model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.ed.Project() == nil {
		view := m.startupView()
		if m.mode == ModeInput || m.mode == ModeConfirm {
			view += "\n" + m.statusLine()
		}
		return view
	}

	var result strings.Builder
	result.WriteString(m.header())
	result.WriteString("\n")

	w, h := m.canvasSize()
	canvas := m.renderCanvas(w, h)
	var gutter []string
	if m.gutter() > 0 {
		gutter = m.rowNumbers(h)
	}
	for i, line := range canvas {
		if gutter != nil {
			result.WriteString(gutter[i])
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	result.WriteString(m.paletteBar(m.width))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m Model) header() string {
	p := m.ed.Project()
	title := TitleStyle.Render(p.Name)
	if m.ed.Dirty() {
		title += DirtyStyle.Render(" *")
	}
	info := fmt.Sprintf("  %s  %dx%d  zoom %d%%", p.ChartType.Label(), p.Width(), p.Height(),
		int(m.ed.Viewport().Zoom*100+0.5))
	if f := p.Freeform; f != nil {
		if l := f.ActiveLayer(); l != nil {
			info += fmt.Sprintf("  layer: %s", l.Name)
			if !l.Visible {
				info += " (hidden)"
			}
			if l.Locked {
				info += " (locked)"
			}
		}
	}
	return title + LabelStyle.Render(info)
}

func (m Model) statusLine() string {
	switch m.mode {
	case ModeInput:
		status := fmt.Sprintf("Mode: INPUT | %s: %s█ | Enter=confirm, Esc=cancel", m.inputLabel(), m.input)
		if m.errorMessage != "" {
			status = fmt.Sprintf("Mode: INPUT | %s | %s: %s█ | Enter=retry, Esc=cancel",
				ErrorStyle.Render("ERROR: "+m.errorMessage), m.inputLabel(), m.input)
		}
		return status
	case ModeConfirm:
		return fmt.Sprintf("Mode: CONFIRM | %s", m.confirmMessage())
	}

	modeStr := m.modeString()
	if m.panMode {
		modeStr = "PAN"
	}
	status := fmt.Sprintf("Mode: %s | Tool: %s | Cell: (%d,%d)", modeStr, m.ed.Tool(), m.cursorCol+1, m.ed.Project().Height()-m.cursorRow)
	if sym, ok := symbols.Get(m.ed.ActiveSymbol()); ok {
		status += fmt.Sprintf(" | Symbol: %c %s", sym.Glyph, sym.Abbreviation)
	}
	if sel, ok := m.ed.Selection(); ok {
		status += fmt.Sprintf(" | Selected: %dx%d", sel.Width(), sel.Height())
	}
	if pr := m.ed.Project().Progress; pr != nil {
		p := m.ed.Project()
		status += fmt.Sprintf(" | Row %d/%d (%d%%)", pr.CurrentRow+1, pr.MaxPosition(p.Width(), p.Height())+1, pr.Percent(p.Width(), p.Height()))
	}
	if m.successMessage != "" {
		status += " | " + SuccessStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + ErrorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m Model) modeString() string {
	switch m.mode {
	case ModeStartup:
		return "STARTUP"
	case ModeNormal:
		if m.ed.Dragging() {
			return "DRAG"
		}
		return "NORMAL"
	case ModeInput:
		return "INPUT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m Model) inputLabel() string {
	switch m.inputOp {
	case InputNewProject:
		return fmt.Sprintf("New %s chart name", m.newChartType.Label())
	case InputRename:
		return "Rename to"
	case InputAddColor:
		return "Color (#RRGGBB name)"
	case InputResize:
		return "Size (WxH)"
	case InputSavePNG:
		return "Export PNG filename"
	case InputSaveVisualTXT:
		return "Export text chart filename"
	case InputSaveInstructions:
		return "Export instructions filename"
	case InputSaveJSON:
		return "Export JSON filename"
	}
	return "Input"
}

func (m Model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmQuit:
		if m.ed.Project() != nil && m.ed.Dirty() {
			return "Save and quit stitchgrid? (y/n)"
		}
		return "Quit stitchgrid? (y/n)"
	case ConfirmNewChart:
		return "Save this chart and start another? (y/n)"
	case ConfirmRemoveColor:
		if e, ok := m.ed.Project().Palette.Find(m.ed.ActiveColor()); ok {
			return fmt.Sprintf("Remove %s and clear its stitches? (y/n)", e.Name)
		}
		return "Remove the active colour? (y/n)"
	case ConfirmDeleteProject:
		if m.selectedProject < len(m.projects) {
			return fmt.Sprintf("Delete %s? This cannot be undone. (y/n)", m.projects[m.selectedProject].Name)
		}
		return "Delete this chart? (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
	}
	return "(y/n)"
}

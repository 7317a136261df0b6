package tui

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/export"
)

func (m *Model) startInput(op InputOp, initial string) {
	m.fromStartup = m.mode == ModeStartup
	m.mode = ModeInput
	m.inputOp = op
	m.input = initial
}

func (m Model) handleInputKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.input = ""
		m.errorMessage = ""
		m.mode = m.inputReturnMode()
		return m
	case tea.KeyEnter:
		m.errorMessage = ""
		m.submitInput()
		return m
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.input = ""
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	case tea.KeyCtrlC:
		m.requestQuit()
	}
	return m
}

// inputReturnMode is where Esc goes: back to the picker when the prompt
// was opened from it or when no chart is open.
func (m Model) inputReturnMode() Mode {
	if m.fromStartup || m.ed.Project() == nil {
		if m.store != nil && m.opts.StartMenu {
			return ModeStartup
		}
		if m.ed.Project() == nil {
			return ModeInput
		}
	}
	return ModeNormal
}

func (m *Model) submitInput() {
	text := strings.TrimSpace(m.input)
	switch m.inputOp {
	case InputNewProject:
		if text == "" {
			m.errorMessage = "Please enter a name"
			return
		}
		m.ed.CreateProject(text, m.newChartType, m.opts.Settings)
		m.cursorRow, m.cursorCol = 0, 0
		m.successMessage = fmt.Sprintf("Created %s (%s)", text, m.newChartType.Label())
	case InputRename:
		if text == "" {
			m.errorMessage = "Please enter a name"
			return
		}
		m.ed.Rename(text)
	case InputAddColor:
		if !m.addColor(text) {
			return
		}
	case InputResize:
		w, h, err := parseSize(text)
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		if !m.ed.ResizeGrid(w, h) {
			m.errorMessage = fmt.Sprintf("Size must be between 1 and %d", chart.MaxDimension)
			return
		}
		m.ensureCursorInBounds()
	default:
		if text == "" {
			m.errorMessage = "Please enter a filename"
			return
		}
		if _, err := os.Stat(text); err == nil && m.opts.Confirmations {
			m.pendingPath = text
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		}
		if !m.writeExport(text) {
			return
		}
	}
	m.input = ""
	m.fromStartup = false
	m.mode = ModeNormal
}

// writeExport renders the open chart to path in the format the prompt
// was opened for.
func (m *Model) writeExport(path string) bool {
	p := m.ed.Snapshot()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			m.errorMessage = fmt.Sprintf("Error saving file: %s", err)
			return false
		}
	}
	f, err := os.Create(path)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error saving file: %s", err)
		return false
	}
	w := bufio.NewWriter(f)
	switch m.inputOp {
	case InputSavePNG:
		opts := export.DefaultPNGOptions()
		opts.Selection = m.selectionPtr()
		err = export.PNG(w, p, opts)
	case InputSaveVisualTXT:
		err = export.Text(w, p, m.selectionPtr())
	case InputSaveInstructions:
		var ins *export.Instructions
		ins, err = export.WrittenInstructions(p, export.DefaultInstructionOptions())
		if err == nil {
			_, err = w.WriteString(ins.Text)
		}
	case InputSaveJSON:
		err = export.JSON(w, p, time.Now())
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		m.errorMessage = fmt.Sprintf("Error saving file: %s", err)
		return false
	}
	absPath, _ := filepath.Abs(path)
	m.successMessage = fmt.Sprintf("Saved to %s", absPath)
	m.log.Info("exported", "project", p.ID, "path", absPath)
	return true
}

// splitColorInput reads "#RRGGBB optional name".
func splitColorInput(text string) (hex, name string) {
	hex, name, _ = strings.Cut(strings.TrimSpace(text), " ")
	return hex, strings.TrimSpace(name)
}

// parseSize reads "WxH", "W H" or "W,H".
func parseSize(text string) (int, int, error) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == 'x' || r == ' ' || r == ','
	})
	if len(fields) != 2 {
		return 0, 0, errors.New("size must look like 40x30")
	}
	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad width %q", fields[0])
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad height %q", fields[1])
	}
	return w, h, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			m.quit()
		case ConfirmNewChart:
			m.leaveChart()
		case ConfirmRemoveColor:
			m.removeActiveColor()
		case ConfirmDeleteProject:
			m.deleteSelectedProject()
		case ConfirmOverwriteFile:
			if !m.writeExport(m.pendingPath) {
				m.mode = ModeInput
				return m
			}
			m.input = ""
			m.pendingPath = ""
		}
		return m
	case "n", "N", "esc":
		switch m.confirmAction {
		case ConfirmOverwriteFile:
			m.mode = ModeInput
		case ConfirmDeleteProject:
			m.mode = ModeStartup
		default:
			m.mode = ModeNormal
		}
	}
	return m
}

package tui

import (
	"bytes"
	"strings"

	"github.com/atotto/clipboard"

	"stitchgrid/pkg/export"
)

// Replaced in tests; the real clipboard needs a display.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
)

func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// copyInstructions puts the written pattern on the system clipboard.
func (m *Model) copyInstructions() {
	ins, err := export.WrittenInstructions(m.ed.Snapshot(), export.DefaultInstructionOptions())
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := writeClipboard(ins.Text); err != nil {
		m.errorMessage = "Clipboard unavailable: " + err.Error()
		return
	}
	m.successMessage = "Copied instructions for " + plural(ins.RowCount, "row")
}

// copyTextChart copies the lettered chart of the selection, or of the
// whole grid when nothing is selected.
func (m *Model) copyTextChart() {
	var buf bytes.Buffer
	sel := m.selectionPtr()
	if err := export.Text(&buf, m.ed.Snapshot(), sel); err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := writeClipboard(buf.String()); err != nil {
		m.errorMessage = "Clipboard unavailable: " + err.Error()
		return
	}
	m.successMessage = "Copied text chart"
}

// colorFromClipboard adds the hex colour on the clipboard to the palette.
func (m *Model) colorFromClipboard() {
	text, err := readClipboard()
	if err != nil {
		m.errorMessage = "Clipboard unavailable: " + err.Error()
		return
	}
	m.addColor(cleanClipboardText(text))
}

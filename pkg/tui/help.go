package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var helpLines = []string{
	"stitchgrid Help",
	"===============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move the cursor one cell",
	"  Shift+h/j/k/l    Move 2x faster",
	"  Space            Toggle pan mode (arrows and mouse drags move the chart)",
	"  +/-              Zoom in / out",
	"  0                Reset zoom and pan",
	"  Mouse            Click and drag with the active tool, wheel to zoom",
	"",
	"Tools:",
	"------",
	"  d                Draw",
	"  e                Erase",
	"  f                Fill (flood fill the same-coloured region)",
	"  s                Select",
	"  i                Eyedropper (pick the colour under the cursor)",
	"  Enter            Use the tool at the cursor; draw, erase and select",
	"                   keep going as the cursor moves until Enter again",
	"  Esc              Finish the stroke, leave pan mode or clear the selection",
	"",
	"Colours and Symbols:",
	"--------------------",
	"  Tab/Shift+Tab    Next / previous colour",
	"  a                Add a colour (#RRGGBB and an optional name)",
	"  A                Add the colour on the system clipboard",
	"  Ctrl+X           Remove the active colour",
	"  ,/.              Previous / next symbol",
	"  t                Stamp or clear the symbol on the cursor cell",
	"",
	"Selection (grid charts):",
	"------------------------",
	"  c                Copy selection",
	"  p                Paste at cursor",
	"  F                Fill selection with the active colour",
	"  Delete           Clear selection",
	"  m/M              Mirror selection horizontally / vertically",
	"  Y                Copy selection as a text chart",
	"",
	"Grid:",
	"-----",
	"  z                Resize chart",
	"  o/O              Insert row / column at cursor",
	"  x/X              Delete row / column at cursor",
	"  #                Toggle row numbers",
	"",
	"Freeform:",
	"---------",
	"  Enter            Place the symbol (draw) or pick one up (select)",
	"  r/R              Rotate selected symbol",
	"  </>              Shrink / grow selected symbol",
	"  Delete           Remove selected symbol",
	"  g/G              Next layer / add layer",
	"  v/V              Toggle layer visibility / lock",
	"  Ctrl+G           Remove layer",
	"",
	"Progress:",
	"---------",
	"  P                Start / stop progress tracking",
	"  [/]              Previous / next row",
	"  D                Cycle direction (rows, columns, diagonals)",
	"",
	"File Operations:",
	"----------------",
	"  Ctrl+S           Save",
	"  S                Export PNG",
	"  T                Export text chart",
	"  E                Export written instructions",
	"  w                Export JSON",
	"  y                Copy written instructions to the clipboard",
	"  N                Rename chart",
	"  n                Back to the chart list",
	"",
	"General:",
	"  u/Ctrl+Z         Undo",
	"  U/Ctrl+Y         Redo",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit (saves first)",
}

func (m Model) handleHelpKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(0, len(helpLines)-m.helpVisibleHeight())
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m
}

func (m Model) helpVisibleHeight() int {
	return max(1, m.height-1)
}

func (m Model) helpView() string {
	visibleHeight := m.helpVisibleHeight()
	startLine := min(m.helpScroll, max(0, len(helpLines)-visibleHeight))
	endLine := min(len(helpLines), startLine+visibleHeight)

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}

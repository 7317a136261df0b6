package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/ansi"
	rtruncate "github.com/muesli/reflow/truncate"

	"stitchgrid/pkg/chart"
)

func (m Model) handleStartupKey(msg tea.KeyMsg) Model {
	m.errorMessage = ""
	switch msg.String() {
	case "up", "k":
		if len(m.projects) > 0 {
			m.selectedProject = (m.selectedProject - 1 + len(m.projects)) % len(m.projects)
		}
	case "down", "j":
		if len(m.projects) > 0 {
			m.selectedProject = (m.selectedProject + 1) % len(m.projects)
		}
	case "enter", "o":
		m.openSelected()
	case "n":
		m.startInput(InputNewProject, "")
	case "t":
		m.newChartType = nextChartType(m.newChartType)
	case "d", "delete":
		if len(m.projects) == 0 {
			return m
		}
		if m.opts.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteProject
		} else {
			m.deleteSelectedProject()
		}
	case "r":
		m.refreshProjects()
	case "q", "ctrl+c":
		m.quitting = true
	}
	return m
}

func (m *Model) openSelected() {
	if m.selectedProject >= len(m.projects) {
		return
	}
	id := m.projects[m.selectedProject].ID
	if err := m.ed.LoadProject(m.ctx, id); err != nil {
		m.errorMessage = fmt.Sprintf("Error opening: %s", err)
		return
	}
	m.mode = ModeNormal
	m.cursorRow, m.cursorCol = 0, 0
	m.successMessage = "Opened " + m.ed.Project().Name
}

func (m *Model) deleteSelectedProject() {
	m.mode = ModeStartup
	if m.selectedProject >= len(m.projects) {
		return
	}
	p := m.projects[m.selectedProject]
	if err := m.store.Delete(m.ctx, p.ID); err != nil {
		m.errorMessage = fmt.Sprintf("Error deleting: %s", err)
		return
	}
	m.successMessage = "Deleted " + p.Name
	m.refreshProjects()
}

func nextChartType(t chart.ChartType) chart.ChartType {
	for i, ct := range chart.ChartTypes {
		if ct == t {
			return chart.ChartTypes[(i+1)%len(chart.ChartTypes)]
		}
	}
	return chart.ChartTypes[0]
}

func (m Model) startupView() string {
	var result strings.Builder
	width := max(1, m.width)

	result.WriteString(TitleStyle.Render("stitchgrid"))
	result.WriteString(LabelStyle.Render("  crochet chart editor"))
	result.WriteString("\n")
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")

	listHeight := max(1, m.height-5)
	if len(m.projects) == 0 {
		result.WriteString("(No saved charts yet)\n")
	} else {
		start := 0
		if m.selectedProject >= listHeight {
			start = m.selectedProject - listHeight + 1
		}
		end := min(len(m.projects), start+listHeight)
		for i := start; i < end; i++ {
			p := m.projects[i]
			line := fmt.Sprintf("%-32s %-24s %3dx%-4d %s",
				truncate(p.Name, 32), p.ChartType.Label(), p.Width(), p.Height(),
				p.UpdatedAt.Local().Format("2006-01-02 15:04"))
			if i == m.selectedProject {
				result.WriteString(SelectedStyle.Render("> " + line + " <"))
			} else {
				result.WriteString("  " + line)
			}
			result.WriteString("\n")
		}
	}

	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")
	status := fmt.Sprintf("Press 'n' for new %s chart, 't' to change type, Enter to open, 'd' to delete, or 'q' to quit",
		m.newChartType.Label())
	if m.successMessage != "" {
		status += " | " + SuccessStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + ErrorStyle.Render("ERROR: "+m.errorMessage)
	}
	result.WriteString(status)
	return result.String()
}

// truncate shortens s to n terminal columns, ending in an ellipsis.
func truncate(s string, n int) string {
	if ansi.PrintableRuneWidth(s) <= n {
		return s
	}
	return rtruncate.StringWithTail(s, uint(n), "…")
}

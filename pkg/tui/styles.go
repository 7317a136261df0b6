package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#7aa2f7")
	ColorSuccess = lipgloss.Color("#9ece6a")
	ColorWarning = lipgloss.Color("#e0af68")
	ColorError   = lipgloss.Color("#f7768e")
	ColorMuted   = lipgloss.Color("#565f89")
	ColorFg      = lipgloss.Color("#c0caf5")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	DirtyStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			Bold(true)
)

// theme holds the canvas colours that follow the dark mode setting.
type theme struct {
	empty     string // unpainted cell or working area
	outside   string // beyond the chart edge
	gridInk   string
	highlight string // fifth and tenth line markers
	selection string
}

var (
	darkTheme = theme{
		empty:     "#24283b",
		outside:   "#1a1b26",
		gridInk:   "#414868",
		highlight: "#737aa2",
		selection: "#7aa2f7",
	}
	lightTheme = theme{
		empty:     "#ffffff",
		outside:   "#e1e2e7",
		gridInk:   "#c4c8da",
		highlight: "#8990b3",
		selection: "#2e7de9",
	}
)

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

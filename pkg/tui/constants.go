package tui

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeInput
	ModeConfirm
)

// InputOp is what the one-line prompt is collecting.
type InputOp int

const (
	InputNewProject InputOp = iota
	InputRename
	InputAddColor
	InputResize
	InputSavePNG
	InputSaveVisualTXT
	InputSaveInstructions
	InputSaveJSON
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmNewChart
	ConfirmRemoveColor
	ConfirmDeleteProject
	ConfirmOverwriteFile
)

const (
	// terminal size of one chart cell at zoom 1
	termCellWidth  = 2
	termCellHeight = 1

	headerLines = 1
	footerLines = 2 // palette bar and status line
	gutterWidth = 5
)

package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/editor"
	"stitchgrid/pkg/tui"
)

type editOptions struct {
	Type      string
	NewName   string
	ExportDir string
}

func (o *editOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", string(chart.Colorwork),
		"Chart type offered for new charts.")
	cmd.Flags().StringVarP(&o.NewName, "new", "n", "",
		"Start a new chart with this name instead of the chart list.")
	cmd.Flags().StringVar(&o.ExportDir, "export-dir", ".",
		"Directory offered for exports.")
}

func addEdit(topLevel *cobra.Command) {
	eo := &editOptions{}
	cmd := &cobra.Command{
		Use:   "edit [chart]",
		Short: "Open the chart editor",
		Example: `
stitchgrid edit
stitchgrid edit "Granny Square"
stitchgrid edit --new Scarf --type c2c
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return eo.run(cmd, args)
		},
	}
	eo.addFlags(cmd)
	topLevel.AddCommand(cmd)
}

var errNoTerminal = errors.New("the editor needs an interactive terminal; see stitchgrid --help for the other commands")

func interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (o *editOptions) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if !interactive(os.Stdin) || !interactive(os.Stdout) {
		return errNoTerminal
	}
	chartType, err := chart.ParseChartType(o.Type)
	if err != nil {
		return err
	}
	e, err := loadEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()

	app, err := e.store.Settings(ctx)
	if err != nil {
		return err
	}
	settings := app.ChartSettings()

	ed := editor.New(e.store,
		editor.WithLogger(e.log),
		editor.WithViewport(tui.TerminalViewport()),
	)
	switch {
	case len(args) == 1:
		p, err := e.store.Find(ctx, args[0])
		if err != nil {
			return err
		}
		ed.Open(p)
	case o.NewName != "":
		ed.CreateProject(o.NewName, chartType, settings)
	}

	m := tui.New(ctx, ed, e.store, tui.Options{
		StartMenu:     e.cfg.StartMenu,
		Confirmations: e.cfg.Confirmations,
		Autosave:      e.cfg.Autosave,
		DarkMode:      app.DarkMode,
		ChartType:     chartType,
		Settings:      settings,
		ExportDir:     o.ExportDir,
		Logger:        e.log,
	})
	e.log.Info("editor started", "store", e.cfg.Path)
	return tui.Run(m)
}

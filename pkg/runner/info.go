package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"

	"stitchgrid/pkg/config"
	"stitchgrid/pkg/store"
)

// Info reports where stitchgrid reads its config and keeps its charts.
type Info struct {
	Config *config.Config
	Store  *store.Store
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := output(n.Out)
	if n.Config == nil {
		var err error
		if n.Config, err = config.Load(); err != nil {
			return err
		}
	}

	if override := os.Getenv("STITCHGRID_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "STITCHGRID_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "STITCHGRID_CONFIG_PATH env var not set")
	}

	file := n.Config.File
	if file == "" {
		file = faint.Sprint("none (defaults)")
	}
	autosave := "off"
	if n.Config.Autosave > 0 {
		autosave = n.Config.Autosave.String()
	}
	logFile := n.Config.LogFile
	if logFile == "" {
		logFile = "stderr"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Config file"), file)
	tbl.AddRow(bold.Sprint("Store"), n.Config.Path)
	tbl.AddRow(bold.Sprint("Autosave"), autosave)
	tbl.AddRow(bold.Sprint("Log"), fmt.Sprintf("%s (%s)", logFile, n.Config.LogLevel))
	tbl.AddRow(bold.Sprint("Start menu"), n.Config.StartMenu)
	tbl.AddRow(bold.Sprint("Confirmations"), n.Config.Confirmations)
	if n.Store != nil {
		tbl.AddRow(bold.Sprint("Charts"), len(n.Store.List(ctx)))
		tbl.AddRow(bold.Sprint("Folders"), len(n.Store.Folders(ctx)))
	}
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}

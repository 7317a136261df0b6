package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/editor"
	"stitchgrid/pkg/store"
)

// New creates and saves an empty chart. Zero dimensions fall back to the
// stored app defaults.
type New struct {
	Store  *store.Store
	Name   string
	Type   chart.ChartType
	Width  int
	Height int
	Folder string
	Log    *slog.Logger
	Out    io.Writer

	// Created is the saved project after Do succeeds.
	Created *chart.Project
}

func (n *New) Do(ctx context.Context) error {
	if n.Store == nil {
		return fmt.Errorf("can not create: %w", errNoStore)
	}
	app, err := n.Store.Settings(ctx)
	if err != nil {
		return err
	}
	settings := app.ChartSettings()
	if n.Width > 0 {
		settings.Width = n.Width
	}
	if n.Height > 0 {
		settings.Height = n.Height
	}
	if !chart.ValidDimensions(settings.Width, settings.Height) {
		return fmt.Errorf("size %dx%d is out of range (1 to %d)", settings.Width, settings.Height, chart.MaxDimension)
	}
	chartType := n.Type
	if chartType == "" {
		chartType = chart.Colorwork
	}

	folderID := ""
	if n.Folder != "" {
		f, err := resolveFolder(ctx, n.Store, n.Folder)
		if err != nil {
			return err
		}
		folderID = f.ID
	}

	ed := editor.New(n.Store, editor.WithLogger(logger(n.Log)))
	ed.CreateProject(n.Name, chartType, settings)
	if err := ed.Save(ctx); err != nil {
		return err
	}
	p := ed.Snapshot()
	if folderID != "" {
		if err := n.Store.MoveToFolder(ctx, p.ID, folderID); err != nil {
			return err
		}
		p.FolderID = folderID
	}
	n.Created = p

	out := output(n.Out)
	_, _ = success.Fprintf(out, "Created %s (%s, %dx%d) ", p.Name, p.ChartType.Label(), p.Width(), p.Height())
	_, _ = idColor.Fprintln(out, p.ID)
	return nil
}

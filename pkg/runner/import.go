package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/editor"
	"stitchgrid/pkg/export"
	"stitchgrid/pkg/importer"
	"stitchgrid/pkg/store"
)

// Import saves a chart read from an exported JSON file or charted from an
// image.
type Import struct {
	Store *store.Store
	Path  string
	// Name overrides the chart name. Images default to the file name.
	Name    string
	Type    chart.ChartType
	Options importer.Options
	Folder  string
	Log     *slog.Logger
	Out     io.Writer

	Imported *chart.Project
}

func (im *Import) Do(ctx context.Context) error {
	if im.Store == nil {
		return fmt.Errorf("can not import: %w", errNoStore)
	}
	folderID := ""
	if im.Folder != "" {
		f, err := resolveFolder(ctx, im.Store, im.Folder)
		if err != nil {
			return err
		}
		folderID = f.ID
	}

	var (
		p   *chart.Project
		err error
	)
	if strings.EqualFold(filepath.Ext(im.Path), ".json") {
		p, err = im.fromJSON(ctx)
	} else {
		p, err = im.fromImage(ctx)
	}
	if err != nil {
		return fmt.Errorf("import %s: %w", im.Path, err)
	}
	if folderID != "" {
		if err := im.Store.MoveToFolder(ctx, p.ID, folderID); err != nil {
			return err
		}
		p.FolderID = folderID
	}
	im.Imported = p

	out := output(im.Out)
	_, _ = success.Fprintf(out, "Imported %s (%s, %dx%d, %s) ", p.Name, p.ChartType.Label(),
		p.Width(), p.Height(), plural(len(p.Palette), "colour"))
	_, _ = idColor.Fprintln(out, p.ID)
	return nil
}

// fromJSON keeps the file's id unless a different chart already owns it.
func (im *Import) fromJSON(ctx context.Context) (*chart.Project, error) {
	data, err := os.ReadFile(im.Path)
	if err != nil {
		return nil, err
	}
	p, err := export.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	if _, err := im.Store.Load(ctx, p.ID); err == nil {
		p.ID = uuid.New().String()
	}
	if im.Name != "" {
		p.Name = im.Name
	}
	p.FolderID = ""
	if err := im.Store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (im *Import) fromImage(ctx context.Context) (*chart.Project, error) {
	f, err := os.Open(im.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := importer.Decode(f, im.Options)
	if err != nil {
		return nil, err
	}
	name := im.Name
	if name == "" {
		base := filepath.Base(im.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	ed := editor.New(im.Store, editor.WithLogger(logger(im.Log)))
	ed.CreateFromImport(name, im.Type, res.Cells, res.Palette)
	if err := ed.Save(ctx); err != nil {
		return nil, err
	}
	return ed.Snapshot(), nil
}

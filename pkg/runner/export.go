package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/export"
	"stitchgrid/pkg/store"
)

type Format string

const (
	FormatJSON         Format = "json"
	FormatPNG          Format = "png"
	FormatText         Format = "txt"
	FormatInstructions Format = "instructions"
)

var Formats = []Format{FormatJSON, FormatPNG, FormatText, FormatInstructions}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "text":
		return FormatText, nil
	case "pattern":
		return FormatInstructions, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func (f Format) ext() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatText:
		return ".txt"
	case FormatInstructions:
		return ".instructions.txt"
	}
	return ".json"
}

// Export writes one saved chart to a file, or to Out when Output is "-".
type Export struct {
	Store  *store.Store
	Ref    string
	Format Format
	// Output is the destination path. Empty picks a name from the chart.
	Output       string
	PNG          export.PNGOptions
	Instructions export.InstructionOptions
	// Selection limits grid exports that support it to a rectangle.
	Selection *chart.Selection
	Now       func() time.Time
	Out       io.Writer

	// Path is the absolute path written, empty for "-".
	Path string
}

func (e *Export) Do(ctx context.Context) error {
	if e.Store == nil {
		return fmt.Errorf("can not export: %w", errNoStore)
	}
	p, err := e.Store.Find(ctx, e.Ref)
	if err != nil {
		return err
	}
	if e.Format == "" {
		e.Format = FormatJSON
	}
	if e.Format != FormatJSON && e.Format != FormatPNG && p.Grid == nil {
		return fmt.Errorf("%s export needs a grid chart, %s is %s", e.Format, p.Name, p.ChartType.Label())
	}

	if e.Output == "-" {
		return e.render(bufio.NewWriter(output(e.Out)), p)
	}
	path := e.Output
	if path == "" {
		path = export.FileName(p, e.Format.ext())
	}
	abs, err := writeFile(path, func(w io.Writer) error {
		return e.render(bufio.NewWriter(w), p)
	})
	if err != nil {
		return fmt.Errorf("export %s: %w", p.Name, err)
	}
	e.Path = abs
	_, _ = success.Fprintf(output(e.Out), "Saved to %s\n", abs)
	return nil
}

func (e *Export) render(w *bufio.Writer, p *chart.Project) error {
	var err error
	switch e.Format {
	case FormatPNG:
		opts := e.PNG
		if opts.Size == "" {
			opts = export.DefaultPNGOptions()
		}
		opts.Selection = e.Selection
		err = export.PNG(w, p, opts)
	case FormatText:
		err = export.Text(w, p, e.Selection)
	case FormatInstructions:
		opts := e.Instructions
		if opts.Format == "" {
			opts = export.DefaultInstructionOptions()
		}
		var ins *export.Instructions
		if ins, err = export.WrittenInstructions(p, opts); err == nil {
			_, err = w.WriteString(ins.Text)
		}
	default:
		now := time.Now
		if e.Now != nil {
			now = e.Now
		}
		err = export.JSON(w, p, now())
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

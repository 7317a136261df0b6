package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/export"
)

// ExportOptions
type ExportOptions struct {
	Output string

	Size        string
	CustomWidth int
	NoGrid      bool
	NoLegend    bool
	Background  string

	TopDown    bool
	NoNumbers  bool
	NoCounts   bool
	Markdown   bool
	RowsNotC2C bool
	Rows       []int
	Cols       []int
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"Output file, or - for stdout. Defaults to a name taken from the chart.")

	cmd.Flags().StringVar(&o.Size, "size", string(export.Medium),
		"PNG size: small, medium, large or custom.")
	cmd.Flags().IntVar(&o.CustomWidth, "custom-width", 0,
		"PNG width in pixels when --size=custom.")
	cmd.Flags().BoolVar(&o.NoGrid, "no-grid", false,
		"PNG without grid lines.")
	cmd.Flags().BoolVar(&o.NoLegend, "no-legend", false,
		"PNG without the colour legend.")
	cmd.Flags().StringVar(&o.Background, "background", "#FFFFFF",
		"PNG background colour.")

	cmd.Flags().BoolVar(&o.TopDown, "top-down", false,
		"Write instructions from the top row down.")
	cmd.Flags().BoolVar(&o.NoNumbers, "no-numbers", false,
		"Leave row numbers out of the instructions.")
	cmd.Flags().BoolVar(&o.NoCounts, "no-counts", false,
		"Leave stitch counts out of the instructions.")
	cmd.Flags().BoolVar(&o.Markdown, "markdown", false,
		"Write instructions as Markdown.")
	cmd.Flags().BoolVar(&o.RowsNotC2C, "rows", false,
		"Write corner to corner charts row by row instead of by diagonal.")

	cmd.Flags().IntSliceVar(&o.Rows, "select-rows", nil,
		"Limit png and txt exports to rows FROM,TO (0-based, top first).")
	cmd.Flags().IntSliceVar(&o.Cols, "select-cols", nil,
		"Limit png and txt exports to columns FROM,TO (0-based).")
}

func (o *ExportOptions) PNGOptions() export.PNGOptions {
	opts := export.DefaultPNGOptions()
	opts.Size = export.Size(o.Size)
	opts.CustomWidth = o.CustomWidth
	opts.GridLines = !o.NoGrid
	opts.Legend = !o.NoLegend
	if o.Background != "" {
		opts.Background = o.Background
	}
	return opts
}

func (o *ExportOptions) InstructionOptions() export.InstructionOptions {
	opts := export.DefaultInstructionOptions()
	if o.TopDown {
		opts.Order = export.TopToBottom
	}
	opts.RowNumbers = !o.NoNumbers
	opts.StitchCounts = !o.NoCounts
	if o.Markdown {
		opts.Format = export.Markdown
	}
	opts.C2CNotation = !o.RowsNotC2C
	return opts
}

// Selection is the rectangle named by --select-rows and --select-cols, or
// nil when neither is set.
func (o *ExportOptions) Selection() (*chart.Selection, error) {
	if len(o.Rows) == 0 && len(o.Cols) == 0 {
		return nil, nil
	}
	if len(o.Rows) != 2 || len(o.Cols) != 2 {
		return nil, fmt.Errorf("--select-rows and --select-cols each take FROM,TO")
	}
	return &chart.Selection{
		StartRow: o.Rows[0], EndRow: o.Rows[1],
		StartCol: o.Cols[0], EndCol: o.Cols[1],
	}, nil
}

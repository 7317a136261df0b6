package options

import (
	"github.com/spf13/cobra"

	"stitchgrid/pkg/importer"
)

// ImportOptions
type ImportOptions struct {
	Name      string
	MaxColors int
	Rotation  int
}

func AddImportArgs(cmd *cobra.Command, o *ImportOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Chart name. Defaults to the file name.")
	cmd.Flags().IntVar(&o.MaxColors, "colors", importer.DefaultMaxColors,
		"Most colours an image import may use.")
	cmd.Flags().IntVar(&o.Rotation, "rotate", 0,
		"Rotate an image clockwise by 0, 90, 180 or 270 degrees.")
}

package commands

import (
	"github.com/spf13/cobra"

	"stitchgrid/pkg/commands/options"
	"stitchgrid/pkg/importer"
	"stitchgrid/pkg/runner"
)

func addImport(topLevel *cobra.Command) {
	co := &options.ChartOptions{}
	im := &options.ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an exported .json chart or chart an image",
		Long: `Import a chart exported as JSON, or turn a PNG, JPEG, GIF, BMP or WebP
image into a colour chart. Images are scaled to --width by --height stitches
(one of them may be 0 to keep the aspect ratio) and reduced to --colors colours.`,
		Example: `
stitchgrid import blanket.stitchgrid.json
stitchgrid import cat.png --width 60 --colors 6
stitchgrid import logo.jpg --width 40 --height 40 --type c2c --rotate 90
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chartType, err := co.ChartType()
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			r := runner.Import{
				Store: e.store,
				Path:  args[0],
				Name:  im.Name,
				Type:  chartType,
				Options: importer.Options{
					Width:     co.Width,
					Height:    co.Height,
					MaxColors: im.MaxColors,
					Rotation:  im.Rotation,
				},
				Folder: co.Folder,
				Log:    e.log,
				Out:    cmd.OutOrStdout(),
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddChartArgs(cmd, co)
	options.AddImportArgs(cmd, im)
	topLevel.AddCommand(cmd)
}

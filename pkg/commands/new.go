package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"stitchgrid/pkg/commands/options"
	"stitchgrid/pkg/runner"
)

func addNew(topLevel *cobra.Command) {
	co := &options.ChartOptions{}

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty chart",
		Example: `
stitchgrid new "Granny Square"
stitchgrid new Blanket --type c2c --width 80 --height 100
stitchgrid new Doily --type freeform --folder Gifts
`,
		Args: cobra.MinimumNArgs(1),
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

			n := runner.New{
				Store:  e.store,
				Name:   strings.Join(args, " "),
				Type:   chartType,
				Width:  co.Width,
				Height: co.Height,
				Folder: co.Folder,
				Log:    e.log,
				Out:    cmd.OutOrStdout(),
			}
			return n.Do(cmd.Context())
		},
	}

	options.AddChartArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

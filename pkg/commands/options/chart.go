package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stitchgrid/pkg/chart"
)

// ChartOptions describe a chart to create.
type ChartOptions struct {
	Type   string
	Width  int
	Height int
	Folder string
}

func AddChartArgs(cmd *cobra.Command, o *ChartOptions) {
	names := make([]string, 0, len(chart.ChartTypes))
	for _, t := range chart.ChartTypes {
		names = append(names, string(t))
	}
	cmd.Flags().StringVarP(&o.Type, "type", "t", string(chart.Colorwork),
		fmt.Sprintf("Chart type, one of %s.", strings.Join(names, ", ")))
	cmd.Flags().IntVar(&o.Width, "width", 0,
		"Width in stitches. Defaults to the app setting.")
	cmd.Flags().IntVar(&o.Height, "height", 0,
		"Height in rows. Defaults to the app setting.")
	AddFolderArg(cmd, &o.Folder)

	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *ChartOptions) ChartType() (chart.ChartType, error) {
	return chart.ParseChartType(o.Type)
}

func AddFolderArg(cmd *cobra.Command, folder *string) {
	cmd.Flags().StringVarP(folder, "folder", "f", "",
		"Folder, by name or id.")
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stitchgrid/pkg/commands/options"
	"stitchgrid/pkg/runner"
)

func addExport(topLevel *cobra.Command) {
	xo := &options.ExportOptions{}

	formats := make([]string, 0, len(runner.Formats))
	for _, f := range runner.Formats {
		formats = append(formats, string(f))
	}

	cmd := &cobra.Command{
		Use:   "export <chart> <format>",
		Short: "Write a chart as json, png, txt or instructions",
		Long: fmt.Sprintf(`Write a saved chart to a file.

Formats: %s.
The chart is matched by id, id prefix or name.`, strings.Join(formats, ", ")),
		Example: `
stitchgrid export Blanket png --size large
stitchgrid export Blanket instructions --markdown -o blanket.md
stitchgrid export 3f2a json -o -
stitchgrid export Blanket txt --select-rows 0,9 --select-cols 0,9
`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: formats,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := runner.ParseFormat(args[1])
			if err != nil {
				return err
			}
			sel, err := xo.Selection()
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			x := runner.Export{
				Store:        e.store,
				Ref:          args[0],
				Format:       format,
				Output:       xo.Output,
				PNG:          xo.PNGOptions(),
				Instructions: xo.InstructionOptions(),
				Selection:    sel,
				Out:          cmd.OutOrStdout(),
			}
			return x.Do(cmd.Context())
		},
	}

	options.AddExportArgs(cmd, xo)
	topLevel.AddCommand(cmd)
}

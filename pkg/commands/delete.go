package commands

import (
	"github.com/spf13/cobra"

	"stitchgrid/pkg/runner"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <chart>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved chart",
		Example: `
stitchgrid delete "Old Swatch"
stitchgrid rm 3f2a
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			d := runner.Delete{Store: e.store, Ref: args[0], Out: cmd.OutOrStdout()}
			return d.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

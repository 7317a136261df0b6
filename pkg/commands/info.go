package commands

import (
	"github.com/spf13/cobra"

	"stitchgrid/pkg/runner"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where charts are stored.",
		Example: `
stitchgrid info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			s := runner.Info{Config: e.cfg, Store: e.store, Out: cmd.OutOrStdout()}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

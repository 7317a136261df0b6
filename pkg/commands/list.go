package commands

import (
	"github.com/spf13/cobra"

	"stitchgrid/pkg/commands/options"
	"stitchgrid/pkg/runner"
)

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var (
		folder string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls"},
		Short:   "List saved charts",
		Example: `
stitchgrid list
stitchgrid list blanket --id
stitchgrid list --folder Gifts --json
stitchgrid list --watch
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			l := runner.List{
				Store:  e.store,
				Folder: folder,
				ShowID: io.ShowID,
				JSON:   oo.JSON,
				Out:    cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				l.Query = args[0]
			}
			if watch {
				w := runner.Watch{List: l}
				return oo.HandleError(cmd.OutOrStdout(), w.Do(cmd.Context()))
			}
			return oo.HandleError(cmd.OutOrStdout(), l.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	options.AddFolderArg(cmd, &folder)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Keep running and reprint the list when charts change.")

	topLevel.AddCommand(cmd)
}

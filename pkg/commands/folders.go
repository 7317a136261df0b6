package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"stitchgrid/pkg/commands/options"
	"stitchgrid/pkg/runner"
)

func addFolders(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"folder"},
		Short:   "Manage chart folders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newFoldersListCmd())
	cmd.AddCommand(newFoldersCreateCmd())
	cmd.AddCommand(newFoldersDeleteCmd())
	topLevel.AddCommand(cmd)
}

func newFoldersListCmd() *cobra.Command {
	io := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List folders and how many charts each holds",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			l := runner.FolderList{Store: e.store, ShowID: io.ShowID, Out: cmd.OutOrStdout()}
			return l.Do(cmd.Context())
		},
	}
	options.AddShowIDArgs(cmd, io)
	return cmd
}

func newFoldersCreateCmd() *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Example: `
stitchgrid folders create Gifts
stitchgrid folders create Baby --parent Gifts
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			c := runner.FolderCreate{
				Store:  e.store,
				Name:   strings.Join(args, " "),
				Parent: parent,
				Out:    cmd.OutOrStdout(),
			}
			return c.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&parent, "parent", "p", "",
		"Parent folder, by name or id.")
	return cmd
}

func newFoldersDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <folder>",
		Aliases: []string{"rm"},
		Short:   "Delete a folder and its subfolders; their charts move to the top level",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			d := runner.FolderDelete{Store: e.store, Ref: args[0], Out: cmd.OutOrStdout()}
			return d.Do(cmd.Context())
		},
	}
	return cmd
}

func addMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "move <chart> [folder]",
		Aliases: []string{"mv"},
		Short:   "File a chart in a folder, or at the top level when no folder is given",
		Example: `
stitchgrid move Blanket Gifts
stitchgrid move Blanket
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			m := runner.Move{Store: e.store, Ref: args[0], Out: cmd.OutOrStdout()}
			if len(args) == 2 {
				m.Folder = args[1]
			}
			return m.Do(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}

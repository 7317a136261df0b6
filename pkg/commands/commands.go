// Package commands is the stitchgrid command line.
package commands

import (
	"github.com/spf13/cobra"

	"stitchgrid/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {
	eo := &editOptions{}

	cmd := &cobra.Command{
		Use:   "stitchgrid [chart]",
		Short: "Design crochet charts in the terminal.",
		Long: `stitchgrid edits colorwork, corner to corner, filet, mosaic, tunisian
and freeform crochet charts. Run it without a command to open the editor.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return eo.run(cmd, args)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&storePath, "path", "",
		"Chart store directory. Overrides the path config key.")
	eo.addFlags(cmd)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addEdit(topLevel)
	addNew(topLevel)
	addList(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addDelete(topLevel)
	addFolders(topLevel)
	addMove(topLevel)
	addSettings(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
}

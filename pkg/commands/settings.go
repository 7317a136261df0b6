package commands

import (
	"github.com/spf13/cobra"

	"stitchgrid/pkg/runner"
)

func addSettings(topLevel *cobra.Command) {
	var (
		dark, light   bool
		units, hand   string
		width, height int
		gaugeH        float64
		gaugeV        float64
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the app settings",
		Example: `
stitchgrid settings
stitchgrid settings --light --width 40 --height 60
stitchgrid settings --units imperial --handedness left
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			var patch runner.SettingsPatch
			flags := cmd.Flags()
			switch {
			case flags.Changed("dark"):
				patch.DarkMode = &dark
			case flags.Changed("light"):
				v := !light
				patch.DarkMode = &v
			}
			if flags.Changed("units") {
				patch.Units = &units
			}
			if flags.Changed("handedness") {
				patch.Handedness = &hand
			}
			if flags.Changed("width") {
				patch.Width = &width
			}
			if flags.Changed("height") {
				patch.Height = &height
			}
			if flags.Changed("gauge-h") {
				patch.GaugeH = &gaugeH
			}
			if flags.Changed("gauge-v") {
				patch.GaugeV = &gaugeV
			}

			s := runner.Settings{Store: e.store, Patch: patch, Out: cmd.OutOrStdout()}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&dark, "dark", false, "Use the dark theme.")
	cmd.Flags().BoolVar(&light, "light", false, "Use the light theme.")
	cmd.Flags().StringVar(&units, "units", "", "Units: metric or imperial.")
	cmd.Flags().StringVar(&hand, "handedness", "", "Handedness: left or right.")
	cmd.Flags().IntVar(&width, "width", 0, "Default width of new charts.")
	cmd.Flags().IntVar(&height, "height", 0, "Default height of new charts.")
	cmd.Flags().Float64Var(&gaugeH, "gauge-h", 0, "Default stitches per unit.")
	cmd.Flags().Float64Var(&gaugeV, "gauge-v", 0, "Default rows per unit.")

	topLevel.AddCommand(cmd)
}

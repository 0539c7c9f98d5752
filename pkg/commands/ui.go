package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/dots/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive year view",
		Long: `Open a full screen view of the year. Move with h/j/k/l, edit a day with
enter, set the focus with f and press ? for every key.`,
		Example: `
dots ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := contextOf(cmd)
			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			return teaui.Run(ctx, e.Service, e.Policy, e.Log)
		},
	}

	topLevel.AddCommand(cmd)
}

package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/commands/options"
	"tableflip.dev/dots/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	so := &options.OutputOptions{}
	legend := false

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the countdown, today's focus and the year grid.",
		Example: `
dots show
dots show --legend
dots show --countdown=replace
dots show --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return so.HandleError(runShow(contextOf(cmd), so.JSON, legend))
		},
	}
	options.AddOutputArg(cmd, so)
	cmd.Flags().BoolVar(&legend, "legend", false, "Print the marker legend under the grid.")

	topLevel.AddCommand(cmd)
}

func runShow(ctx context.Context, asJSON, legend bool) error {
	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	s := show.Show{
		Service: e.Service,
		Policy:  e.Policy,
		JSON:    asJSON,
		Legend:  legend,
	}
	return s.Do(ctx)
}

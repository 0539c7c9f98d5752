package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/commands/options"
	"tableflip.dev/dots/pkg/runner/report"
	"tableflip.dev/dots/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var window string
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize notes and focus from the last days",
		Long: `Report lists day notes grouped by type, milestones first, and the daily
focus records within the window. The window ends today and includes it.

Examples:
  dots report
  dots report --window 3d
  dots report --window 2w`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if _, _, err := timeutil.ParseWindow(window); err != nil {
				return oo.HandleError(err)
			}
			ctx := contextOf(cmd)
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			r := report.Report{
				Service: e.Service,
				Window:  window,
				JSON:    oo.JSON,
			}
			return oo.HandleError(r.Do(ctx))
		},
	}

	cmd.Flags().StringVar(&window, "window", timeutil.DefaultWindow, "time window to include, ending today (for example 3d, 2w)")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/commands/options"
	"tableflip.dev/dots/pkg/runner/focus"
)

func addFocus(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	history := false

	cmd := &cobra.Command{
		Use:   "focus [show|set <text>|done|clear]",
		Short: "Show or change today's focus.",
		Long: `Each day has at most one focus. A focus left over from an earlier day is
moved to the history the next time dots runs.

"done" toggles completion, so running it twice marks the focus active again.`,
		Example: `
dots focus
dots focus set write the quarterly report
dots focus done
dots focus --history
`,
		ValidArgs: []string{string(focus.Show), string(focus.Set), string(focus.Done), string(focus.Clear)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := contextOf(cmd)

			action := focus.Show
			if len(args) > 0 {
				action = focus.Action(strings.ToLower(args[0]))
				args = args[1:]
			}
			switch action {
			case focus.Show, focus.Done, focus.Clear:
				if len(args) > 0 {
					return oo.HandleError(cmd.Usage())
				}
			case focus.Set:
			default:
				return oo.HandleError(cmd.Usage())
			}

			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			f := focus.Focus{
				Service: e.Service,
				Action:  action,
				Text:    strings.Join(args, " "),
				History: history,
				JSON:    oo.JSON,
			}
			return oo.HandleError(f.Do(ctx))
		},
	}
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&history, "history", false, "Also print the focus of earlier days.")

	topLevel.AddCommand(cmd)
}

package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/commands/options"
	"tableflip.dev/dots/pkg/runner/scratch"
)

func addScratch(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "scratch [show|set <text>|append <text>]",
		Aliases: []string{"scratchpad"},
		Short:   "Print, replace or append to the scratchpad.",
		Long: `The scratchpad is one free-form text kept next to the year.

"set" with no text empties it. "append" adds the text as a new line.`,
		Example: `
dots scratch
dots scratch set call the venue
dots scratch append bring snacks
dots scratch set
`,
		ValidArgs: []string{string(scratch.Show), string(scratch.Set), string(scratch.Append)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := contextOf(cmd)

			action := scratch.Show
			if len(args) > 0 {
				action = scratch.Action(strings.ToLower(args[0]))
				args = args[1:]
			}
			text := strings.Join(args, " ")
			switch action {
			case scratch.Show:
				if text != "" {
					return oo.HandleError(cmd.Usage())
				}
			case scratch.Set:
			case scratch.Append:
				if text == "" {
					return oo.HandleError(cmd.Usage())
				}
			default:
				return oo.HandleError(cmd.Usage())
			}

			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := scratch.Scratch{
				Service: e.Service,
				Action:  action,
				Text:    text,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(ctx))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

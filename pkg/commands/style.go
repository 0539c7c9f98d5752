package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/commands/options"
	"tableflip.dev/dots/pkg/runner/style"
	"tableflip.dev/dots/pkg/state"
)

func addStyle(topLevel *cobra.Command) {
	io := &options.InteractiveOptions{}

	valid := make([]string, 0, len(state.TodayStyles()))
	for _, s := range state.TodayStyles() {
		valid = append(valid, string(s))
	}

	cmd := &cobra.Command{
		Use:       "style [" + strings.Join(valid, "|") + "]",
		Short:     "Show or choose how today's dot is drawn.",
		ValidArgs: valid,
		Args:      cobra.MaximumNArgs(1),
		Example: `
dots style
dots style hourglass
dots style -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := contextOf(cmd)

			var want state.TodayStyle
			if len(args) == 1 {
				want = state.TodayStyle(strings.ToLower(args[0]))
				if !want.Valid() {
					return fmt.Errorf("unknown style %q, expected one of %s", args[0], strings.Join(valid, ", "))
				}
			}

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			s := style.Style{
				Service:     e.Service,
				Style:       want,
				Interactive: io.Interactive,
			}
			return s.Do(ctx)
		},
	}
	options.AddInteractiveArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

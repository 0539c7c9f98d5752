package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/snake"
)

func addAuto(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Pick a command, its flags and arguments from prompts.",
		Example: `
dots auto
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := snake.Wizard{
				Root: topLevel,
				Skip: []string{"auto", "completion", "mcp", "ui"},
				In:   io.NopCloser(cmd.InOrStdin()),
				Out:  snake.NopCloser(cmd.OutOrStdout()),
			}
			args, err := w.Run()
			if err != nil {
				return err
			}
			cmd.Printf("Running: %s %s\n", topLevel.Name(), strings.Join(args, " "))
			topLevel.SetArgs(args)
			return topLevel.ExecuteContext(contextOf(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}

package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the dots and today markers",
		Example: `
dots key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			return k.Do(contextOf(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}

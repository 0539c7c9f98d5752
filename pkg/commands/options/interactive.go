package options

import (
	"github.com/spf13/cobra"
)

// InteractiveOptions
type InteractiveOptions struct {
	Interactive bool
}

// AddInteractiveArgs adds -i, which prompts for values instead of reading
// them from arguments.
func AddInteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Prompt for the values instead of passing them as arguments.`)
}

package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the document is stored.",
		Example: `
dots info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := contextOf(cmd)
			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			s := info.Info{
				Config:  e.Config,
				Service: e.Service,
			}
			return s.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}

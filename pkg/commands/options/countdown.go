package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/dots/pkg/countdown"
)

// CountdownOptions
type CountdownOptions struct {
	Policy string
}

// AddCountdownArgs adds --countdown to every command, bound to the viper key
// countdown.
func AddCountdownArgs(cmd *cobra.Command, o *CountdownOptions) {
	cmd.PersistentFlags().StringVar(&o.Policy, "countdown", string(countdown.DefaultPolicy),
		`How a milestone countdown is shown: "separate" keeps days remaining as the headline, "replace" lets the milestone take over.`)
	_ = viper.BindPFlag("countdown", cmd.PersistentFlags().Lookup("countdown"))
}

// GetPolicy parses the configured policy, preferring configured over the
// flag default.
func (o *CountdownOptions) GetPolicy(configured string) (countdown.Policy, error) {
	if configured == "" {
		configured = o.Policy
	}
	return countdown.ParsePolicy(configured)
}

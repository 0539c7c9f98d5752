package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/commands/options"
	"tableflip.dev/dots/pkg/countdown"
	"tableflip.dev/dots/pkg/store"
)

var (
	lo = &options.LogOptions{}
	co = &options.CountdownOptions{}
)

func New() *cobra.Command {
	so := &options.OutputOptions{}
	legend := false

	cmd := &cobra.Command{
		Use:   "dots",
		Short: base.Wrap80("The year in dots: a countdown, a dot per day and a daily focus."),
		Long: base.Wrap80("Without a subcommand dots prints the countdown, today's focus and " +
			"one dot per day of the year. Past days are filled, today is marked and " +
			"milestone days show as diamonds."),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return so.HandleError(runShow(contextOf(cmd), so.JSON, legend))
		},
	}
	options.AddOutputArg(cmd, so)
	cmd.Flags().BoolVar(&legend, "legend", false, "Print the marker legend under the grid.")

	options.AddLogArgs(cmd, lo)
	options.AddCountdownArgs(cmd, co)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addDay(topLevel)
	addFocus(topLevel)
	addScratch(topLevel)
	addStyle(topLevel)
	addReport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addAuto(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// env is what every command that touches the document needs.
type env struct {
	Config  store.Config
	Service *app.Service
	Policy  countdown.Policy
	Log     *zap.Logger
}

// loadEnv reads configuration, opens the store and loads the document. Load
// also resets a focus left over from another day.
func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := lo.Logger(cfg.LogLevel())
	if err != nil {
		return nil, err
	}
	policy, err := co.GetPolicy(cfg.Countdown())
	if err != nil {
		return nil, err
	}

	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	svc := app.New(p, app.WithLogger(log))
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	log.Debug("document loaded", zap.String("location", svc.Location()))

	return &env{Config: cfg, Service: svc, Policy: policy, Log: log}, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/commands/options"
	"tableflip.dev/dots/pkg/runner/day"
)

func addDay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Read, write or remove the note on one day.",
		Example: `
dots day get --date 2025-6-1
dots day set "Trip to Lisbon" --date 6/1
dots day set "ran 10k" --type journal
dots day delete --day 152
`,
	}

	addDayGet(cmd)
	addDaySet(cmd)
	addDayDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addDayGet(parent *cobra.Command) {
	do := &options.DayOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the note on a day, or the suggested type when it has none.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := contextOf(cmd)
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			year, d, err := do.GetDay(e.Service.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			g := day.Get{
				Service: e.Service,
				Year:    year,
				Day:     d,
				JSON:    oo.JSON,
			}
			return oo.HandleError(g.Do(ctx))
		},
	}
	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addDaySet(parent *cobra.Command) {
	do := &options.DayOptions{}
	ao := &options.AnnotationOptions{}
	io := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "set [note]",
		Short: "Store a note on a day. An empty note without --type clears the day.",
		Args: func(cmd *cobra.Command, args []string) error {
			if io.Interactive {
				return nil
			}
			if len(args) == 0 && ao.Type == "" {
				return errors.New("a note is required unless --interactive or --type is given")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := contextOf(cmd)
			typ, typeSet, err := ao.GetType()
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			year, d, err := do.GetDay(e.Service.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			s := day.Set{
				Service:     e.Service,
				Year:        year,
				Day:         d,
				Note:        strings.Join(args, " "),
				Type:        typ,
				TypeSet:     typeSet,
				Interactive: io.Interactive,
				JSON:        oo.JSON,
			}
			return oo.HandleError(s.Do(ctx))
		},
	}
	options.AddDayArgs(cmd, do)
	options.AddAnnotationArgs(cmd, ao)
	options.AddInteractiveArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addDayDelete(parent *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Remove the note on a day.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := contextOf(cmd)
			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			year, d, err := do.GetDay(e.Service.Now())
			if err != nil {
				return err
			}
			r := day.Delete{Service: e.Service, Year: year, Day: d}
			return r.Do(ctx)
		},
	}
	options.AddDayArgs(cmd, do)

	parent.AddCommand(cmd)
}

package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "2006/1/2"
)

// DayOptions selects one day, by date or by day of the year.
type DayOptions struct {
	Date string
	Day  int
}

func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Specify a date, example: --date="2025-6-1" or --date="6/1". Defaults to today.`)
	cmd.Flags().IntVar(&o.Day, "day", 0,
		"Specify a day of the current year, 1 to 366.")
}

// GetDay resolves the selection to (year, day of year) relative to now.
// Short dates land in now's year.
func (o *DayOptions) GetDay(now time.Time) (year, day int, err error) {
	if o.Date != "" && o.Day != 0 {
		return 0, 0, errors.New("use only one of --date and --day")
	}
	if o.Day != 0 {
		if o.Day < 1 || o.Day > timeutil.TotalDays(now.Year()) {
			return 0, 0, fmt.Errorf("day %d is outside %d", o.Day, now.Year())
		}
		return now.Year(), o.Day, nil
	}
	if o.Date == "" {
		return now.Year(), timeutil.DayOfYear(now), nil
	}

	t, err := time.Parse(layoutISO, o.Date)
	if err != nil {
		t, err = time.Parse(layoutISOShort, fmt.Sprintf("%d/%s", now.Year(), o.Date))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid date %q: %w", o.Date, err)
		}
	}
	return t.Year(), t.YearDay(), nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hourly-rate-calculator/internal/timecalc"
)

var durationCmd = &cobra.Command{
	Use:   "duration <time> | duration <start> <end>",
	Short: "Convert worked time between H:MM and decimal hours",
	Long: `With one argument, read a duration as H:MM or decimal hours.
With two arguments, compute the time between a start and an end (HH:MM);
an end before the start counts as a shift past midnight.

  hrc duration 7.25       # 7:15 h
  hrc duration 22:00 06:00  # 8:00 h`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDuration,
}

func runDuration(cmd *cobra.Command, args []string) error {
	var hours timecalc.Hours
	if len(args) == 2 {
		start, ok := timecalc.ParseTimeOfDay(args[0])
		if !ok {
			fail(exitUsage, fmt.Errorf("invalid start time %q: want HH:MM", args[0]))
		}
		end, ok := timecalc.ParseTimeOfDay(args[1])
		if !ok {
			fail(exitUsage, fmt.Errorf("invalid end time %q: want HH:MM", args[1]))
		}
		hours = timecalc.ElapsedHours(start, end)
	} else {
		hours = timecalc.ParseDurationText(args[0])
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatDurationLine(hours))
	return nil
}

func formatDurationLine(h timecalc.Hours) string {
	return fmt.Sprintf("%s h  (%s h, %s)", timecalc.FormatClock(h), timecalc.FormatDecimal(h), timecalc.FormatHuman(h))
}

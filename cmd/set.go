package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	setWorker     string
	setClient     string
	setAddress    string
	setRate       string
	setStart      string
	setEnd        string
	setDuration   string
	setClearTimes bool
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update fields of the sheet",
	Long: `Write one or more fields to the sheet and print the new totals.

When both --start and --end are valid the stored duration is replaced by the
computed H:MM value. Use --clear-times to go back to a manual duration.`,
	Args: cobra.NoArgs,
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVar(&setWorker, "worker", "", "Your name")
	setCmd.Flags().StringVar(&setClient, "client", "", "Client name")
	setCmd.Flags().StringVar(&setAddress, "address", "", "Client address (use \\n for line breaks)")
	setCmd.Flags().StringVar(&setRate, "rate", "", "Hourly rate")
	setCmd.Flags().StringVar(&setStart, "start", "", "Start time (HH:MM)")
	setCmd.Flags().StringVar(&setEnd, "end", "", "End time (HH:MM)")
	setCmd.Flags().StringVar(&setDuration, "duration", "", "Worked time as H:MM or decimal hours")
	setCmd.Flags().BoolVar(&setClearTimes, "clear-times", false, "Remove start and end time")
}

func runSet(cmd *cobra.Command, args []string) error {
	s := loadSheet()

	fields := []struct {
		flag string
		dst  *string
		val  string
	}{
		{"worker", &s.WorkerName, setWorker},
		{"client", &s.ClientName, setClient},
		{"address", &s.ClientAddress, unescapeNewlines(setAddress)},
		{"rate", &s.HourlyRate, setRate},
		{"start", &s.StartTime, setStart},
		{"end", &s.EndTime, setEnd},
		{"duration", &s.DurationText, setDuration},
	}
	changed := setClearTimes
	for _, f := range fields {
		if cmd.Flags().Changed(f.flag) {
			*f.dst = f.val
			changed = true
		}
	}
	if !changed {
		return fmt.Errorf("nothing to set; see hrc set --help")
	}
	if setClearTimes {
		s.StartTime = ""
		s.EndTime = ""
	}

	snap := saveSheet(&s)
	if snap.FromClock && cmd.Flags().Changed("duration") {
		fmt.Fprintln(os.Stderr, styleYellow.Render("Note: start and end time are set; --duration was replaced by "+snap.DurationText))
	}

	printSummary(cmd.OutOrStdout(), s, snap)
	return nil
}

// unescapeNewlines turns a typed \n into a line break; escapeNewlines is
// its inverse for single-line inputs.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

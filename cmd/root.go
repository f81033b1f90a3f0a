package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hourly-rate-calculator/internal/config"
	"github.com/Tiliavir/hourly-rate-calculator/internal/storage"
)

// Exit codes.
const (
	exitUsage   = 1
	exitFailure = 2
)

var (
	sheetPath string
	verbose   bool

	cfg    config.Config
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "hrc",
	Short: "Hourly Rate Calculator – earnings and invoices from the command line",
	Long: `hrc computes what a piece of work earns: hourly rate × worked time plus
itemized expenses. Worked time is either typed in (8:30 or 8.5) or derived from
a start and end time; shifts past midnight are handled.

The current calculation is kept in a single sheet file (~/.hrc/sheet.json),
which can be turned into an XLSX invoice.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sheetPath, "sheet", "", "Sheet file (default ~/.hrc/sheet.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(durationCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(resetCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	base, err := storage.BaseDir()
	if err != nil {
		fail(exitFailure, err)
	}
	if sheetPath == "" {
		sheetPath, err = storage.DefaultSheetPath()
		if err != nil {
			fail(exitFailure, err)
		}
	}

	cfg, err = config.Load(base)
	if err != nil {
		fail(exitFailure, err)
	}
	logger.Debug("configuration loaded", "path", config.FilePath(base), "sheet", sheetPath)
	return nil
}

// fail prints err and terminates with code.
func fail(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}

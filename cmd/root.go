package cmd

import (
	"fmt"
	"os"
	"time"

	"wattwise/internal/config"
	"wattwise/internal/period"
	"wattwise/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB        string
	flagHousehold string
	flagPeriod    string
	flagFrom      string
	flagTo        string
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "wattwise",
	Short: "Household energy analytics CLI",
	Long:  "Analyze household energy consumption: usage trends, benchmarks, and savings recommendations.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "d", "", "Database path (defaults to the XDG data dir)")
	rootCmd.PersistentFlags().StringVarP(&flagHousehold, "household", "H", "", "Household ID")
	rootCmd.PersistentFlags().StringVarP(&flagPeriod, "period", "p", string(period.CurrentCycle),
		"Analysis period: current-cycle, previous-cycle, trailing-3, trailing-6, year-to-date, custom")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Custom period start (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "Custom period end (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// openStore opens the database at --db or the configured default path.
func openStore(cfg config.Config) (*store.Store, error) {
	path := flagDB
	if path == "" {
		path = cfg.General.DatabasePath
	}
	if path == "" {
		path = config.DefaultDatabasePath()
	}
	return store.Open(path)
}

// loadConfig reads the config file, falling back to defaults when absent.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// selectedPeriod maps the --period/--from/--to flags to a selector and
// optional custom range.
func selectedPeriod() (period.Selector, *period.Range, error) {
	sel := period.Selector(flagPeriod)
	if flagFrom == "" && flagTo == "" {
		return sel, nil, nil
	}

	from, err := time.Parse("2006-01-02", flagFrom)
	if err != nil {
		return sel, nil, fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", flagFrom)
	}
	to, err := time.Parse("2006-01-02", flagTo)
	if err != nil {
		return sel, nil, fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", flagTo)
	}
	return period.Custom, &period.Range{Start: from, End: to}, nil
}

// requireHousehold resolves the target household from --household or the
// configured default.
func requireHousehold(cfg config.Config) (string, error) {
	if flagHousehold != "" {
		return flagHousehold, nil
	}
	if cfg.General.DefaultHousehold != "" {
		return cfg.General.DefaultHousehold, nil
	}
	return "", fmt.Errorf("no household selected: pass --household or set default_household in %s", config.ConfigPath())
}

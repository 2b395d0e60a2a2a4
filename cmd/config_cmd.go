package cmd

import (
	"fmt"

	"wattwise/internal/cli"
	"wattwise/internal/config"

	"github.com/spf13/cobra"
)

var flagConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write a default config file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigInit {
		if config.Exists() {
			return fmt.Errorf("config already exists at %s", config.ConfigPath())
		}
		if err := config.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Printf("  Wrote default config to %s\n", config.ConfigPath())
		return nil
	}

	cfg := loadConfig()

	advisor := "not configured"
	if cfg.Advisor.BaseURL != "" && config.AdvisorKey(cfg) != "" {
		advisor = fmt.Sprintf("%s (%s)", cfg.Advisor.BaseURL, cfg.Advisor.Model)
	}

	dbPath := cfg.General.DatabasePath
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	fmt.Println()
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Config file", config.ConfigPath()},
		{"Database", dbPath},
		{"Default period", cfg.General.DefaultPeriod},
		{"Default household", cfg.General.DefaultHousehold},
		{"Benchmark threshold", cli.FormatPercent(cfg.Rules.BenchmarkDeltaPercent)},
		{"Device threshold", cli.FormatEnergy(cfg.Rules.DeviceThreshold)},
		{"Price per kWh", cli.FormatCost(cfg.Rules.PricePerUnit)},
		{"Advisory backend", advisor},
	}))

	return nil
}

package cmd

import (
	"fmt"
	"time"

	"wattwise/internal/cli"
	"wattwise/internal/energy"

	"github.com/spf13/cobra"
)

var flagBenchmarkDate string

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Compare trailing consumption against similar households",
	RunE:  runBenchmark,
}

func init() {
	benchmarkCmd.Flags().StringVar(&flagBenchmarkDate, "date", "", "Comparison end date (YYYY-MM-DD, defaults to today)")
	rootCmd.AddCommand(benchmarkCmd)
}

func runBenchmark(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	householdID, err := requireHousehold(cfg)
	if err != nil {
		return err
	}

	var target *time.Time
	if flagBenchmarkDate != "" {
		t, err := time.Parse("2006-01-02", flagBenchmarkDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", flagBenchmarkDate)
		}
		target = &t
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := energy.NewService(st, cfg, nil)
	cmp, err := svc.CompareToBenchmark(householdID, target)
	if err != nil {
		return err
	}

	if cmp == nil {
		fmt.Println("\n  No benchmark available for this household's size, floor area, and season.")
		return nil
	}

	delta := cli.FormatSignedPercent(cmp.DifferencePercent)
	if cmp.DifferencePercent > 0 {
		delta = cli.Warn(delta)
	} else {
		delta = cli.Saving(delta)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BENCHMARK  Last 30 days"))
	fmt.Println()
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Your consumption", cli.FormatEnergy(cmp.UserConsumption)},
		{"Similar households", cli.FormatEnergy(cmp.BenchmarkConsumption)},
		{"Difference", delta},
		{"Season", string(cmp.Season)},
		{"Cohort", fmt.Sprintf("%d-person, %s m²", cmp.HouseholdSize, cmp.FloorAreaRange)},
	}))

	return nil
}

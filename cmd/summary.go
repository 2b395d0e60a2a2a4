package cmd

import (
	"errors"
	"fmt"

	"wattwise/internal/cli"
	"wattwise/internal/energy"
	"wattwise/internal/period"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Consumption summary for the selected period",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	householdID, err := requireHousehold(cfg)
	if err != nil {
		return err
	}
	sel, custom, err := selectedPeriod()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := energy.NewService(st, cfg, nil)
	summary, err := svc.ResolveAnalysis(householdID, sel, custom)
	if err != nil {
		if errors.Is(err, period.ErrInvalidRange) {
			return fmt.Errorf("invalid period: %w", err)
		}
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ENERGY USAGE  %s", summary.PeriodLabel)))
	fmt.Println()

	rows := [][]string{
		{"Period", fmt.Sprintf("%s to %s",
			summary.StartDate.Format("2006-01-02"), summary.EndDate.Format("2006-01-02"))},
		{"Days", cli.FormatNumber(int64(summary.PeriodDays))},
		{"---"},
		{"Total Consumption", cli.FormatEnergy(summary.TotalConsumption)},
		{"Daily Average", cli.FormatEnergy(summary.AverageDaily)},
		{"Total Cost", cli.FormatCost(summary.CostTotal)},
	}

	if summary.BenchmarkDelta != 0 {
		delta := cli.FormatSignedPercent(summary.BenchmarkDelta)
		if summary.BenchmarkDelta > 0 {
			delta = cli.Warn(delta)
		} else {
			delta = cli.Saving(delta)
		}
		rows = append(rows, []string{"vs Benchmark", delta})
	}

	if cmp := summary.Comparison; cmp != nil {
		change := cli.FormatSignedPercent(cmp.ChangePercent)
		if cmp.Direction == "increase" {
			change = cli.Warn(change)
		} else {
			change = cli.Saving(change)
		}
		rows = append(rows,
			[]string{"---"},
			[]string{"Daily Rate", cli.FormatEnergy(cmp.CurrentDailyRate)},
			[]string{"Previous Rate", cli.FormatEnergy(cmp.PreviousDailyRate)},
			[]string{"Change", change},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(summary.Trend) > 1 {
		values := make([]float64, len(summary.Trend))
		for i, p := range summary.Trend {
			values[i] = p.Consumption
		}
		fmt.Printf("\n  Trend  %s\n", cli.RenderSparkline(values))
	}

	return nil
}

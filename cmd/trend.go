package cmd

import (
	"fmt"

	"wattwise/internal/cli"
	"wattwise/internal/energy"

	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Consumption trend over the selected period",
	RunE:  runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(_ *cobra.Command, _ []string) error {
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
		return err
	}

	if len(summary.Trend) == 0 {
		fmt.Println("\n  No readings recorded in the selected period.")
		return nil
	}

	maxVal := 0.0
	for _, p := range summary.Trend {
		if p.Consumption > maxVal {
			maxVal = p.Consumption
		}
	}

	rows := make([][]string, 0, len(summary.Trend))
	for _, p := range summary.Trend {
		rows = append(rows, []string{
			p.Period,
			cli.FormatEnergy(p.Consumption),
			cli.FormatCost(p.Cost),
			cli.RenderHorizontalBar(p.Consumption, maxVal, 24),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TREND  %s", summary.PeriodLabel)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Period", "Usage", "Cost", ""},
		Rows:    rows,
	}))

	return nil
}

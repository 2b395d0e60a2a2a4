package cmd

import (
	"fmt"

	"wattwise/internal/cli"
	"wattwise/internal/energy"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Per-device consumption breakdown",
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(_ *cobra.Command, _ []string) error {
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

	if len(summary.DeviceBreakdown) == 0 {
		fmt.Println("\n  No device readings recorded in the selected period.")
		return nil
	}

	var deviceTotal float64
	for _, d := range summary.DeviceBreakdown {
		deviceTotal += d.Consumption
	}

	rows := make([][]string, 0, len(summary.DeviceBreakdown))
	for _, d := range summary.DeviceBreakdown {
		rows = append(rows, []string{
			d.DeviceName,
			string(d.Category),
			cli.FormatEnergy(d.Consumption),
			cli.FormatShare(d.Consumption, deviceTotal),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DEVICES  %s", summary.PeriodLabel)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Device", "Category", "Usage", "Share"},
		Rows:    rows,
	}))

	return nil
}

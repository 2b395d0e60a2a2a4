package cmd

import (
	"fmt"

	"wattwise/internal/cli"

	"github.com/spf13/cobra"
)

var flagDone string

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "List saved recommendations",
	RunE:  runRecommendations,
}

func init() {
	recommendationsCmd.Flags().StringVar(&flagDone, "done", "", "Mark the given recommendation ID as implemented")
	rootCmd.AddCommand(recommendationsCmd)
}

func runRecommendations(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	householdID, err := requireHousehold(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if flagDone != "" {
		if err := st.MarkImplemented(flagDone); err != nil {
			return err
		}
		fmt.Printf("  Marked %s as implemented\n", flagDone)
		return nil
	}

	saved, err := st.RecommendationsByHousehold(householdID)
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		fmt.Println("\n  No saved recommendations. Run `wattwise recommend --save` first.")
		return nil
	}

	rows := make([][]string, 0, len(saved))
	for _, s := range saved {
		status := " "
		if s.Implemented {
			status = "done"
		}
		rows = append(rows, []string{
			s.Title,
			string(s.Category),
			cli.FormatCost(s.EstimatedCostSave),
			status,
			s.ID[:8],
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAVED RECOMMENDATIONS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Title", "Category", "Save/mo", "Status", "ID"},
		Rows:    rows,
	}))

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"wattwise/internal/advisor"
	"wattwise/internal/cli"
	"wattwise/internal/config"
	"wattwise/internal/energy"
	"wattwise/internal/model"
	"wattwise/internal/recommend"

	"github.com/spf13/cobra"
)

var (
	flagAdvise bool
	flagSave   bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate savings recommendations",
	Long: "Generate savings recommendations from consumption rules. With --advise, " +
		"the advisory backend is consulted first and rule output fills in on failure.",
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().BoolVar(&flagAdvise, "advise", false, "Consult the advisory backend")
	recommendCmd.Flags().BoolVar(&flagSave, "save", false, "Persist the generated recommendations")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, _ []string) error {
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

	// A typed nil *advisor.Client must not reach the Backend interface.
	var backend recommend.Backend
	if flagAdvise {
		if client := advisor.NewClient(cfg.Advisor, config.AdvisorKey(cfg)); client != nil {
			backend = client
		} else if !flagQuiet {
			fmt.Fprintln(os.Stderr, "  Advisory backend not configured, using rules only")
		}
	}

	svc := energy.NewService(st, cfg, backend)

	var recs []model.Recommendation
	if flagAdvise {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		recs, err = svc.GenerateAdvisoryRecommendations(ctx, householdID, sel, custom)
	} else {
		recs, err = svc.GenerateRecommendations(householdID, sel, custom)
	}
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("\n  No recommendations for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RECOMMENDATIONS"))
	fmt.Println()

	for i, rec := range recs {
		fmt.Printf("  %d. %s\n", i+1, rec.Title)
		if rec.Description != "" {
			fmt.Printf("     %s\n", rec.Description)
		}
		fmt.Printf("     %s/mo  %s  %s  %s\n",
			cli.Saving(cli.FormatCost(rec.EstimatedCostSave)),
			cli.FormatEnergy(rec.EstimatedSaving),
			rec.Category,
			rec.Difficulty,
		)
		fmt.Println()
	}

	if flagSave {
		n, err := svc.SaveRecommendations(householdID, recs)
		if err != nil {
			return err
		}
		fmt.Printf("  Saved %d new recommendation(s)\n", n)
	}

	return nil
}

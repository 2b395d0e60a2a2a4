package cmd

import (
	"fmt"

	"wattwise/internal/ingest"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Import readings from a JSONL export",
	Long: "Import meter readings from a JSONL file, one reading per line. " +
		"Lines that fail to parse are skipped and counted.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	// --household overrides per-line household IDs when set; otherwise each
	// line must carry its own.
	res, err := ingest.ImportFile(args[0], flagHousehold, st)
	if err != nil {
		return err
	}

	fmt.Printf("  Imported %d reading(s)\n", res.Imported)
	if res.Skipped > 0 {
		fmt.Printf("  Skipped %d incomplete record(s)\n", res.Skipped)
	}
	if res.ParseErrors > 0 {
		fmt.Printf("  %d line(s) could not be parsed\n", res.ParseErrors)
	}
	return nil
}

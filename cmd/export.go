package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uketsuke/internal/roster"
	"uketsuke/internal/tabular"
)

// exportCmd converts a roster file without entering the TUI: useful
// for turning the morning sign-up sheet into the dated desk file, or
// converting between csv and xlsx.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a roster file to the dated export format",
	Long: `Reads a roster file (--roster or the configured path), normalizes it
through the import schemas, and writes the dated export file without
starting the TUI.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "",
		"output path (default: オープンキャンパス受付_YYYYMMDD.csv)")
	exportCmd.Flags().Bool("xlsx", false,
		"write an xlsx workbook instead of csv")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	input := viper.GetString("roster")
	if input == "" {
		input = cfg.Roster
	}
	if input == "" {
		return fmt.Errorf("no roster file: pass --roster or set roster in the config")
	}

	cells, err := tabular.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	parsed, err := tabular.Parse(cells, cfg.NoPreferenceProgram)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", input, err)
	}

	store := roster.New(cfg.RosterPrograms(), cfg.Policy(), cfg.NoPreferenceProgram)
	defer store.Close()
	count := store.ImportBatch(parsed.Rows)

	format := tabular.FormatCSV
	if xlsx, _ := cmd.Flags().GetBool("xlsx"); xlsx {
		format = tabular.FormatXLSX
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = tabular.ExportFilename(format, time.Now())
	} else {
		format = tabular.DetectFormat(out)
	}

	rows := tabular.ExportRows(store.Records(), cfg.Schema())
	if err := tabular.WriteFile(out, rows); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d件 (%d件スキップ) -> %s\n",
		input, count, parsed.Skipped, out)
	return nil
}

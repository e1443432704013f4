package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export matching schemes to CSV, JSON or Excel",
	Long: `Export your ranked scheme matches to a file.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of scheme objects
  - xlsx: Excel workbook (requires --file)

By default only eligible and partial matches are exported; use --tier all
to include every scheme.

Examples:
  sahayak export --age 30 --state Kerala --format=csv > schemes.csv
  sahayak export --age 30 --state Kerala --format=xlsx --file schemes.xlsx
  sahayak export --tier all --format=json > everything.json`,
	RunE: runExport,
}

var (
	exportProfile profileFlags
	exportFilters filterFlags
	exportFormat  string
	exportFile    string
	exportTier    string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportProfile.register(exportCmd)
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json, xlsx)")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportTier, "tier", "matches", "Which results to export (eligible, matches, all)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	writer, err := exportWriter(exportFormat)
	if err != nil {
		return err
	}
	if exportFormat == "xlsx" && exportFile == "" {
		return fmt.Errorf("xlsx export needs --file")
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	catalog, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Open database
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	saved, err := db.SavedNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to read saved schemes: %w", err)
	}

	ranked := eligibility.ApplyFilters(
		eligibility.ScoreAndRank(catalog.Schemes(), exportProfile.Profile()),
		exportFilters.Filters(),
	)
	results, err := selectTier(ranked, exportTier)
	if err != nil {
		return err
	}
	rows := output.ToExportRows(results, saved)

	var w io.Writer = os.Stdout
	if exportFile != "" {
		f, err := os.Create(exportFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportFile, err)
		}
		defer f.Close()
		w = f
	}

	if err := writer(w, rows); err != nil {
		return err
	}

	log.Info("exported schemes",
		zap.String("format", exportFormat),
		zap.Int("rows", len(rows)),
		zap.String("file", exportFile),
	)
	if exportFile != "" {
		fmt.Fprintf(os.Stderr, "Exported %d scheme(s) to %s\n", len(rows), exportFile)
	}
	return nil
}

func exportWriter(format string) (func(io.Writer, []output.ExportRow) error, error) {
	switch format {
	case "csv":
		return output.WriteCSV, nil
	case "json":
		return output.WriteJSON, nil
	case "xlsx":
		return output.WriteXLSX, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (use csv, json or xlsx)", format)
	}
}

// selectTier keeps ranked results down to the requested tiers, in rank order
func selectTier(ranked []eligibility.Result, tier string) ([]eligibility.Result, error) {
	c := eligibility.Classify(ranked)
	switch tier {
	case "eligible":
		return c.Eligible, nil
	case "matches", "":
		results := make([]eligibility.Result, 0, len(c.Eligible)+len(c.Partial))
		results = append(results, c.Eligible...)
		return append(results, c.Partial...), nil
	case "all":
		return ranked, nil
	default:
		return nil, fmt.Errorf("unknown tier: %s (use eligible, matches or all)", tier)
	}
}

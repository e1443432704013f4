package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dataset statistics",
	Long: `Display statistics about the scheme dataset: load status, schemes per
level, the most common categories and how many schemes you saved.

With answer flags, also shows how many schemes fall in each match tier for you.

Examples:
  sahayak stats
  sahayak stats --top 20
  sahayak stats --age 45 --state Assam --occupation Farmer`,
	RunE: runStats,
}

var (
	statsProfile profileFlags
	statsTop     int
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsProfile.register(statsCmd)
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "Number of categories to list")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	saved, err := db.ListSaved(ctx)
	if err != nil {
		return fmt.Errorf("failed to get saved schemes: %w", err)
	}

	cats := catalog.Categories()
	if statsTop > 0 && len(cats) > statsTop {
		cats = cats[:statsTop]
	}

	summary := &output.DatasetSummary{
		Source:        cfg.Dataset.Source,
		LoadState:     catalog.State(),
		Total:         catalog.Len(),
		ByLevel:       catalog.LevelCounts(),
		TopCategories: cats,
		Saved:         len(saved),
	}
	if err := catalog.Err(); err != nil {
		summary.LoadError = err.Error()
	}

	if profile := statsProfile.Profile(); !profile.IsEmpty() {
		stats := eligibility.GetStats(eligibility.ScoreAndRank(catalog.Schemes(), profile))
		summary.Scores = &stats
	}

	return output.Output(outputFmt, summary)
}

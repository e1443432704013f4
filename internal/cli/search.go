package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search schemes",
	Long: `Search across all schemes by name, details or benefits.

With answer flags, results are ranked by how well they match you;
otherwise they keep dataset order.

Examples:
  sahayak search pension
  sahayak search "crop insurance" --state Odisha
  sahayak search scholarship --scheme-category education --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var (
	searchProfile  profileFlags
	searchCategory string
	searchLimit    int
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchProfile.register(searchCmd)
	searchCmd.Flags().StringVar(&searchCategory, "scheme-category", "", "Only schemes in this category")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 25, "Maximum number of results (0 for all)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

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

	// Search
	ranked := eligibility.ScoreAndRank(catalog.Schemes(), searchProfile.Profile())
	results := eligibility.ApplyFilters(ranked, eligibility.Filters{Search: query, Category: searchCategory})

	if len(results) == 0 {
		fmt.Printf("No schemes found matching: %s\n", query)
		return nil
	}

	total := len(results)
	if searchLimit > 0 && total > searchLimit {
		results = results[:searchLimit]
	}

	if outputFmt != "json" {
		fmt.Printf("Found %d scheme(s) matching: %s", total, query)
		if len(results) < total {
			fmt.Printf(" (showing %d)", len(results))
		}
		fmt.Print("\n\n")
	}

	// Output
	return output.Output(outputFmt, results)
}

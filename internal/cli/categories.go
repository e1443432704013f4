package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List scheme categories",
	Long: `List every scheme category in the dataset with the number of schemes in it.
Use a category name with --scheme-category on check or search.

Examples:
  sahayak categories
  sahayak categories -o json`,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	catalog, err := loadCatalog(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, catalog.Categories())
}

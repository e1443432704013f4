package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <scheme name|slug>",
	Short: "Show scheme details",
	Long: `Show full details of a scheme: benefits, eligibility, application
process and required documents.

The identifier can be:
  - Scheme name (case-insensitive, exact)
  - Scheme slug

Pass answer flags to also see how well the scheme matches you and why.

Examples:
  sahayak show pm-kisan
  sahayak show "Post Matric Scholarship" --age 19 --category SC`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

var showProfile profileFlags

func init() {
	rootCmd.AddCommand(showCmd)
	showProfile.register(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	identifier := strings.Join(args, " ")

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

	sc := catalog.Find(identifier)
	if sc == nil {
		return fmt.Errorf("scheme not found: %s", identifier)
	}

	// Open database
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	saved, err := db.IsSaved(ctx, sc.Name)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	// Output
	return output.Output(outputFmt, output.NewSchemeDetail(sc, showProfile.Profile(), saved))
}

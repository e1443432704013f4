package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/logger"
	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
	"github.com/vijay-prabhu/scheme-sahayak/internal/questionnaire"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check which schemes you are eligible for",
	Long: `Answer a few questions and see the government schemes that match you.

Without answer flags, check asks the questions interactively. The dataset
loads in the background while you answer. Results are split into eligible
(70% match or more) and partial (40% to 69%) schemes, best first.

Examples:
  sahayak check                                   # Guided questionnaire
  sahayak check --age 34 --state Kerala           # Answers from flags
  sahayak check --age 60 --state Bihar --occupation Farmer --no-prompt
  sahayak check --age 22 --state Goa --scheme-category education -o json
  sahayak check --age 40 --state Punjab --all     # Show every match`,
	RunE: runCheck,
}

var (
	checkProfile  profileFlags
	checkFilters  filterFlags
	checkNoPrompt bool
	checkAll      bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkProfile.register(checkCmd)
	checkFilters.register(checkCmd)
	checkCmd.Flags().BoolVar(&checkNoPrompt, "no-prompt", false, "Never ask questions or open the result browser")
	checkCmd.Flags().BoolVar(&checkAll, "all", false, "Show every eligible and partial match instead of the top results")
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	// Start loading while the questions are answered
	catalog, err := startCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Open database
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	interactive := Interactive() && !checkNoPrompt && outputFmt != "json"
	required := cfg.RequiredFields()

	profile := checkProfile.Profile()
	if profile.IsEmpty() && interactive {
		fmt.Println("Answer a few questions to find schemes for you.")
		fmt.Println()
		profile, err = questionnaire.Run(questionnaire.PromptAsker{}, profile, required)
		if errors.Is(err, questionnaire.ErrAborted) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	} else if missing := profile.Missing(required...); len(missing) > 0 {
		return fmt.Errorf("missing required answers: %s", flagNames(missing))
	}
	log.Debug("profile collected", logger.ProfileFields(profile)...)

	terminal := NewTerminal()
	schemes, err := terminal.WaitForCatalog(ctx, catalog)
	if err != nil {
		return fmt.Errorf("failed waiting for schemes: %w", err)
	}

	saved, err := db.SavedNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to read saved schemes: %w", err)
	}

	limits := cfg.Limits()
	if checkAll {
		limits = eligibility.Limits{}
	}

	filters := checkFilters.Filters()
	view := eligibility.Screen(schemes, profile, filters).Display(limits)
	log.Info("screened schemes", append(logger.CountsFields(view.Counts), zap.Bool("truncated", view.Truncated()))...)

	report := &output.Report{
		View:        view,
		Filters:     filters,
		LoadState:   catalog.State(),
		DatasetSize: len(schemes),
		Saved:       saved,
	}
	if err := output.Output(outputFmt, report); err != nil {
		return err
	}

	if !interactive || catalog.State() == scheme.StateFailed {
		return nil
	}

	results := make([]eligibility.Result, 0, len(view.Eligible)+len(view.Partial))
	results = append(results, view.Eligible...)
	results = append(results, view.Partial...)
	if len(results) == 0 {
		return nil
	}

	fmt.Println()
	b := &browser{
		asker:    questionnaire.PromptAsker{},
		out:      cmd.OutOrStdout(),
		store:    db,
		saved:    saved,
		profile:  profile,
		terminal: terminal,
	}
	return b.run(ctx, results)
}

func flagNames(fields []eligibility.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = "--" + string(f)
	}
	return strings.Join(names, ", ")
}

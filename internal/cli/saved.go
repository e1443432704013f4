package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/scheme-sahayak/internal/database"
	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved schemes",
	Long: `Saved schemes are kept between sessions and marked with ★ in results.

Examples:
  sahayak saved list
  sahayak saved add "Pradhan Mantri Awas Yojana"
  sahayak saved remove pm-kisan
  sahayak saved toggle "Pradhan Mantri Awas Yojana"
  sahayak saved import bookmarks.txt
  sahayak saved clear`,
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved schemes",
	RunE:  runSavedList,
}

var savedToggleCmd = &cobra.Command{
	Use:   "toggle <scheme name|slug>",
	Short: "Save a scheme, or remove it if already saved",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSavedToggle,
}

var savedAddCmd = &cobra.Command{
	Use:   "add <scheme name|slug>",
	Short: "Save a scheme",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSavedAdd,
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <scheme name|slug>",
	Short: "Remove a scheme from saved",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSavedRemove,
}

var savedImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace saved schemes with the names in a file",
	Long: `Replace the saved schemes with the names listed in a file, one per line.
Blank lines and lines starting with # are ignored. Use - to read stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runSavedImport,
}

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved scheme",
	RunE:  runSavedClear,
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedRemoveCmd)
	savedCmd.AddCommand(savedToggleCmd)
	savedCmd.AddCommand(savedImportCmd)
	savedCmd.AddCommand(savedClearCmd)
}

func runSavedList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	saved, err := db.ListSaved(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list saved schemes: %w", err)
	}

	return output.Output(outputFmt, saved)
}

func runSavedToggle(cmd *cobra.Command, args []string) error {
	return updateSaved(cmd, strings.Join(args, " "), func(ctx context.Context, db *database.DB, name string) (bool, error) {
		return db.ToggleSaved(ctx, name)
	})
}

func runSavedAdd(cmd *cobra.Command, args []string) error {
	return updateSaved(cmd, strings.Join(args, " "), func(ctx context.Context, db *database.DB, name string) (bool, error) {
		return true, db.SaveScheme(ctx, name)
	})
}

func runSavedRemove(cmd *cobra.Command, args []string) error {
	return updateSaved(cmd, strings.Join(args, " "), func(ctx context.Context, db *database.DB, name string) (bool, error) {
		return false, db.UnsaveScheme(ctx, name)
	})
}

// updateSaved resolves identifier against the dataset, applies change and
// reports the resulting saved state
func updateSaved(cmd *cobra.Command, identifier string, change func(context.Context, *database.DB, string) (bool, error)) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	name, err := resolveSavedName(ctx, catalog, db, identifier)
	if err != nil {
		return err
	}

	nowSaved, err := change(ctx, db, name)
	if err != nil {
		return fmt.Errorf("failed to update saved schemes: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(map[string]interface{}{"name": name, "saved": nowSaved})
	}
	if nowSaved {
		fmt.Printf("Saved %s\n", name)
	} else {
		fmt.Printf("Removed %s from saved\n", name)
	}
	return nil
}

type savedLookup interface {
	IsSaved(ctx context.Context, name string) (bool, error)
}

// resolveSavedName returns the dataset's spelling of a scheme. Names missing
// from a loaded dataset are accepted only when already saved, so stale
// bookmarks can still be removed.
func resolveSavedName(ctx context.Context, catalog *scheme.Catalog, store savedLookup, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if sc := catalog.Find(identifier); sc != nil {
		return sc.Name, nil
	}
	if catalog.State() != scheme.StateReady {
		return identifier, nil
	}

	isSaved, err := store.IsSaved(ctx, identifier)
	if err != nil {
		return "", fmt.Errorf("database error: %w", err)
	}
	if !isSaved {
		return "", fmt.Errorf("scheme not found: %s", identifier)
	}
	return identifier, nil
}

func runSavedImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	set, err := importSaved(ctx, catalog, db, r)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d saved scheme(s)\n", len(set))
	return nil
}

type savedReplacer interface {
	ReplaceSaved(ctx context.Context, set database.SavedSet) error
}

// importSaved reads one scheme name per line and stores exactly that set.
// Names found in the dataset take its spelling; others are kept as written.
func importSaved(ctx context.Context, catalog *scheme.Catalog, store savedReplacer, r io.Reader) (database.SavedSet, error) {
	set := database.SavedSet{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if sc := catalog.Find(line); sc != nil {
			line = sc.Name
		}
		set[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read saved names: %w", err)
	}

	if err := store.ReplaceSaved(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to save schemes: %w", err)
	}
	return set, nil
}

func runSavedClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.ClearSaved(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to clear saved schemes: %w", err)
	}

	fmt.Printf("Removed %d saved scheme(s)\n", n)
	return nil
}

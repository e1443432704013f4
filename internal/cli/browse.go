package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"

	"github.com/vijay-prabhu/scheme-sahayak/internal/database"
	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
	"github.com/vijay-prabhu/scheme-sahayak/internal/questionnaire"
)

const (
	actionDone = "Done"
	actionBack = "Back to results"
)

// savedToggler flips the saved flag of a scheme
type savedToggler interface {
	ToggleSaved(ctx context.Context, name string) (bool, error)
}

// browser lets the user open a result, read its details and save it
type browser struct {
	asker    questionnaire.Asker
	out      io.Writer
	store    savedToggler
	saved    database.SavedSet
	profile  eligibility.Profile
	terminal *Terminal
}

func (b *browser) run(ctx context.Context, results []eligibility.Result) error {
	if len(results) == 0 {
		return nil
	}
	if b.saved == nil {
		b.saved = database.SavedSet{}
	}

	for {
		items := make([]string, 0, len(results)+1)
		for _, r := range results {
			items = append(items, b.label(r))
		}
		items = append(items, actionDone)

		idx, err := b.asker.Select("Select a scheme to see details", items)
		if err != nil {
			return ignoreAbort(err)
		}
		if idx < 0 || idx >= len(results) {
			return nil
		}

		done, err := b.detail(ctx, results[idx])
		if err != nil || done {
			return err
		}
	}
}

// detail shows one scheme and its actions, reporting whether the user is done
func (b *browser) detail(ctx context.Context, r eligibility.Result) (bool, error) {
	for {
		name := r.Scheme.Name
		fmt.Fprintln(b.out)
		if err := output.TableTo(b.out, output.NewSchemeDetail(r.Scheme, b.profile, b.saved.Has(name))); err != nil {
			return false, err
		}
		fmt.Fprintln(b.out)

		toggle := "Save this scheme"
		if b.saved.Has(name) {
			toggle = "Remove from saved"
		}
		actions := []string{toggle, actionBack, actionDone}

		idx, err := b.asker.Select("What next?", actions)
		if err != nil {
			return true, ignoreAbort(err)
		}

		switch actions[idx] {
		case actionBack:
			return false, nil
		case actionDone:
			return true, nil
		}

		nowSaved, err := b.store.ToggleSaved(ctx, name)
		if err != nil {
			return false, fmt.Errorf("failed to update saved schemes: %w", err)
		}
		if nowSaved {
			b.saved[name] = struct{}{}
			fmt.Fprintf(b.out, "Saved %s\n", name)
		} else {
			delete(b.saved, name)
			fmt.Fprintf(b.out, "Removed %s from saved\n", name)
		}
	}
}

func (b *browser) label(r eligibility.Result) string {
	mark := " "
	if b.saved.Has(r.Scheme.Name) {
		mark = "★"
	}
	score := fmt.Sprintf("%3d%%", r.Score)
	if b.terminal != nil {
		score = b.terminal.Color(TierColor(r.Tier), score)
	}
	return fmt.Sprintf("%s %s  %s", mark, score, r.Scheme.Name)
}

func ignoreAbort(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) ||
		errors.Is(err, promptui.ErrAbort) || errors.Is(err, questionnaire.ErrAborted) {
		return nil
	}
	return err
}

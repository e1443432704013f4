package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/scheme-sahayak/internal/database"
	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

const savedMark = "★"

// Report is the outcome of one screening run
type Report struct {
	View        eligibility.View    `json:"results"`
	Filters     eligibility.Filters `json:"filters"`
	LoadState   scheme.LoadState    `json:"load_state"`
	DatasetSize int                 `json:"dataset_size"`
	Saved       database.SavedSet   `json:"-"`
}

// DatasetSummary describes the loaded dataset and, optionally, how a profile fares against it
type DatasetSummary struct {
	Source        string                 `json:"source"`
	LoadState     scheme.LoadState       `json:"load_state"`
	LoadError     string                 `json:"load_error,omitempty"`
	Total         int                    `json:"total"`
	ByLevel       map[string]int         `json:"by_level"`
	TopCategories []scheme.CategoryCount `json:"top_categories"`
	Saved         int                    `json:"saved"`
	Scores        *eligibility.Stats     `json:"scores,omitempty"`
}

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *Report:
		return reportTable(w, v)
	case []eligibility.Result:
		return resultsTable(w, v, nil, 1)
	case *SchemeDetail:
		return schemeDetail(w, v)
	case []scheme.CategoryCount:
		return categoriesTable(w, v)
	case []database.SavedScheme:
		return savedTable(w, v)
	case *DatasetSummary:
		return summaryTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func reportTable(w io.Writer, r *Report) error {
	if r.LoadState == scheme.StateFailed {
		fmt.Fprintln(w, "Could not load the scheme dataset. No schemes to check against.")
		return nil
	}

	counts := r.View.Counts
	if !r.Filters.IsZero() {
		fmt.Fprintf(w, "Filters: %s\n", describeFilters(r.Filters))
	}

	if counts.Eligible == 0 && counts.Partial == 0 {
		fmt.Fprintln(w, "No matching schemes found. Try adjusting your answers or filters.")
		return nil
	}

	fmt.Fprintf(w, "Found %d schemes you can apply for", counts.Eligible)
	if counts.Partial > 0 {
		fmt.Fprintf(w, " and %d partial matches", counts.Partial)
	}
	fmt.Fprintf(w, " (checked %d schemes)\n", counts.Total)

	next := 1
	if len(r.View.Eligible) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "ELIGIBLE (match %d%% or more)\n", eligibility.EligibleThreshold)
		if err := resultsTable(w, r.View.Eligible, r.Saved, next); err != nil {
			return err
		}
		if len(r.View.Eligible) < counts.Eligible {
			fmt.Fprintf(w, "Showing top %d of %d eligible schemes\n", len(r.View.Eligible), counts.Eligible)
		}
		next += len(r.View.Eligible)
	}

	if len(r.View.Partial) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "PARTIAL MATCH (%d%% to %d%%)\n", eligibility.PartialThreshold, eligibility.EligibleThreshold-1)
		if err := resultsTable(w, r.View.Partial, r.Saved, next); err != nil {
			return err
		}
		if len(r.View.Partial) < counts.Partial {
			fmt.Fprintf(w, "Showing top %d of %d partial matches\n", len(r.View.Partial), counts.Partial)
		}
	}

	if counts.Unmatched > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d schemes did not match your profile.\n", counts.Unmatched)
	}

	return nil
}

func resultsTable(w io.Writer, results []eligibility.Result, saved database.SavedSet, start int) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No schemes found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Scheme", "Level", "Category", "Benefits", "Match")

	for i, r := range results {
		name := truncate(r.Scheme.Name, 45)
		if saved.Has(r.Scheme.Name) {
			name = savedMark + " " + name
		}
		if err := table.Append([]string{
			fmt.Sprintf("%d", start+i),
			name,
			r.Scheme.CardLevel(),
			truncate(firstCategory(r.Scheme), 24),
			r.Scheme.CardBenefits(),
			fmt.Sprintf("%d%%", r.Score),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func categoriesTable(w io.Writer, cats []scheme.CategoryCount) error {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Category", "Schemes")
	for _, c := range cats {
		if err := table.Append([]string{c.Category, fmt.Sprintf("%d", c.Count)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func savedTable(w io.Writer, saved []database.SavedScheme) error {
	if len(saved) == 0 {
		fmt.Fprintln(w, "No saved schemes.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCHEME\tSAVED")
	fmt.Fprintln(tw, "------\t-----")
	for _, s := range saved {
		fmt.Fprintf(tw, "%s\t%s\n", truncate(s.Name, 60), s.SavedAt.Format("Jan 02, 2006"))
	}
	return tw.Flush()
}

func summaryTable(w io.Writer, s *DatasetSummary) error {
	fmt.Fprintln(w, "Scheme Dataset")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Source:            %s\n", s.Source)
	fmt.Fprintf(w, "Status:            %s\n", s.LoadState)
	if s.LoadError != "" {
		fmt.Fprintf(w, "Error:             %s\n", s.LoadError)
	}
	fmt.Fprintf(w, "Total schemes:     %d\n", s.Total)
	fmt.Fprintf(w, "Saved schemes:     %d\n", s.Saved)

	if len(s.ByLevel) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By level")
		fmt.Fprintln(w, strings.Repeat("-", 30))
		levels := make([]string, 0, len(s.ByLevel))
		for l := range s.ByLevel {
			levels = append(levels, l)
		}
		sort.Slice(levels, func(i, j int) bool {
			if s.ByLevel[levels[i]] != s.ByLevel[levels[j]] {
				return s.ByLevel[levels[i]] > s.ByLevel[levels[j]]
			}
			return levels[i] < levels[j]
		})
		for _, l := range levels {
			fmt.Fprintf(w, "  %-20s %d\n", truncate(l, 20), s.ByLevel[l])
		}
	}

	if len(s.TopCategories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top categories")
		fmt.Fprintln(w, strings.Repeat("-", 30))
		for _, c := range s.TopCategories {
			fmt.Fprintf(w, "  %-32s %d\n", truncate(c.Category, 32), c.Count)
		}
	}

	if s.Scores != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Your matches")
		fmt.Fprintln(w, strings.Repeat("-", 30))
		fmt.Fprintf(w, "  Eligible:        %d\n", s.Scores.Eligible)
		fmt.Fprintf(w, "  Partial:         %d\n", s.Scores.Partial)
		fmt.Fprintf(w, "  Unmatched:       %d\n", s.Scores.Unmatched)
		fmt.Fprintf(w, "  Average score:   %.1f\n", s.Scores.AverageScore)
		fmt.Fprintf(w, "  Best score:      %d\n", s.Scores.TopScore)
	}

	return nil
}

func describeFilters(f eligibility.Filters) string {
	var parts []string
	if q := strings.TrimSpace(f.Search); q != "" {
		parts = append(parts, fmt.Sprintf("search %q", q))
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") {
		parts = append(parts, fmt.Sprintf("category %q", c))
	}
	return strings.Join(parts, ", ")
}

func firstCategory(s *scheme.Scheme) string {
	cats := s.Categories()
	if len(cats) == 0 {
		return "-"
	}
	return cats[0]
}

func truncate(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-1]) + "…"
}

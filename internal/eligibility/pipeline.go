package eligibility

import (
	"slices"
	"strings"

	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

// Tier buckets a score for display
type Tier string

const (
	TierEligible  Tier = "eligible"
	TierPartial   Tier = "partial"
	TierUnmatched Tier = "unmatched"
)

// Tier thresholds
const (
	EligibleThreshold = 70
	PartialThreshold  = 40
)

// Default display caps
const (
	DefaultEligibleLimit = 20
	DefaultPartialLimit  = 10
)

// TierFor returns the tier of a score
func TierFor(score int) Tier {
	switch {
	case score >= EligibleThreshold:
		return TierEligible
	case score >= PartialThreshold:
		return TierPartial
	default:
		return TierUnmatched
	}
}

// Result pairs a scheme with its score for one profile.
// It is rebuilt whenever the profile changes and never stored on the scheme.
type Result struct {
	Scheme *scheme.Scheme `json:"scheme"`
	Score  int            `json:"score"`
	Tier   Tier           `json:"tier"`
}

// ScoreAndRank scores every scheme and orders them best first.
// Equal scores keep their dataset order.
func ScoreAndRank(schemes []scheme.Scheme, p Profile) []Result {
	results := make([]Result, len(schemes))
	for i := range schemes {
		score := Score(&schemes[i], p)
		results[i] = Result{Scheme: &schemes[i], Score: score, Tier: TierFor(score)}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return b.Score - a.Score
	})
	return results
}

// Filters narrows results by free text and scheme category
type Filters struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
}

// IsZero reports whether the filters let everything through
func (f Filters) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && categoryQuery(f.Category) == ""
}

// Match reports whether a scheme passes both filters
func (f Filters) Match(s *scheme.Scheme) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Details), q) &&
			!strings.Contains(strings.ToLower(s.Benefits), q) {
			return false
		}
	}
	if c := categoryQuery(f.Category); c != "" {
		if !strings.Contains(strings.ToLower(s.Category), c) {
			return false
		}
	}
	return true
}

func categoryQuery(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "all" {
		return ""
	}
	return c
}

// ApplyFilters keeps the results matching f, without touching score or order
func ApplyFilters(results []Result, f Filters) []Result {
	if f.IsZero() {
		return results
	}

	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if f.Match(r.Scheme) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Counts are the full tier sizes, before any display cap
type Counts struct {
	Eligible  int `json:"eligible"`
	Partial   int `json:"partial"`
	Unmatched int `json:"unmatched"`
	Total     int `json:"total"`
}

// Classification partitions ranked results into tiers, each in rank order
type Classification struct {
	Eligible  []Result `json:"eligible"`
	Partial   []Result `json:"partial"`
	Unmatched []Result `json:"unmatched"`
}

// Classify splits ranked results into tiers
func Classify(results []Result) Classification {
	c := Classification{
		Eligible:  []Result{},
		Partial:   []Result{},
		Unmatched: []Result{},
	}
	for _, r := range results {
		switch TierFor(r.Score) {
		case TierEligible:
			c.Eligible = append(c.Eligible, r)
		case TierPartial:
			c.Partial = append(c.Partial, r)
		default:
			c.Unmatched = append(c.Unmatched, r)
		}
	}
	return c
}

// Counts returns the full size of every tier
func (c Classification) Counts() Counts {
	return Counts{
		Eligible:  len(c.Eligible),
		Partial:   len(c.Partial),
		Unmatched: len(c.Unmatched),
		Total:     len(c.Eligible) + len(c.Partial) + len(c.Unmatched),
	}
}

// Limits caps how many results of each tier are displayed. Zero means no cap.
type Limits struct {
	Eligible int
	Partial  int
}

// DefaultLimits returns the standard display caps
func DefaultLimits() Limits {
	return Limits{Eligible: DefaultEligibleLimit, Partial: DefaultPartialLimit}
}

// View is the capped slice of a classification shown to the user
type View struct {
	Eligible []Result `json:"eligible"`
	Partial  []Result `json:"partial"`
	Counts   Counts   `json:"counts"`
}

// Truncated reports whether the cap hid any eligible or partial result
func (v View) Truncated() bool {
	return len(v.Eligible) < v.Counts.Eligible || len(v.Partial) < v.Counts.Partial
}

// Display applies the caps while keeping the full counts
func (c Classification) Display(l Limits) View {
	return View{
		Eligible: capResults(c.Eligible, l.Eligible),
		Partial:  capResults(c.Partial, l.Partial),
		Counts:   c.Counts(),
	}
}

func capResults(results []Result, n int) []Result {
	if n <= 0 || len(results) <= n {
		return results
	}
	return results[:n]
}

// Screen runs the whole pipeline: score, rank, filter, classify
func Screen(schemes []scheme.Scheme, p Profile, f Filters) Classification {
	return Classify(ApplyFilters(ScoreAndRank(schemes, p), f))
}

// Stats summarises a set of results
type Stats struct {
	Total        int     `json:"total"`
	Eligible     int     `json:"eligible"`
	Partial      int     `json:"partial"`
	Unmatched    int     `json:"unmatched"`
	AverageScore float64 `json:"average_score"`
	TopScore     int     `json:"top_score"`
}

// GetStats returns statistics about scored results
func GetStats(results []Result) Stats {
	stats := Stats{Total: len(results)}

	sum := 0
	for _, r := range results {
		switch TierFor(r.Score) {
		case TierEligible:
			stats.Eligible++
		case TierPartial:
			stats.Partial++
		default:
			stats.Unmatched++
		}
		sum += r.Score
		if r.Score > stats.TopScore {
			stats.TopScore = r.Score
		}
	}
	if len(results) > 0 {
		stats.AverageScore = float64(sum) / float64(len(results))
	}
	return stats
}

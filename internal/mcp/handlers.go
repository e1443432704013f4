package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/scheme-sahayak/internal/database"
	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/logger"
	"github.com/vijay-prabhu/scheme-sahayak/internal/output"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

func (s *Server) registerHandlers() {
	s.handlers["check_eligibility"] = s.handleCheckEligibility
	s.handlers["get_scheme"] = s.handleGetScheme
	s.handlers["list_categories"] = s.handleListCategories
	s.handlers["list_saved"] = s.handleListSaved
	s.handlers["toggle_saved"] = s.handleToggleSaved
}

// schemes waits for the catalog and returns whatever it holds.
// A failed load yields no schemes, not an error.
func (s *Server) schemes(ctx context.Context) ([]scheme.Scheme, error) {
	schemes, err := s.catalog.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset still loading: %w", err)
	}
	return schemes, nil
}

func (s *Server) savedSet(ctx context.Context) (database.SavedSet, error) {
	if s.db == nil {
		return database.SavedSet{}, nil
	}
	saved, err := s.db.SavedNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return saved, nil
}

type profileParams struct {
	Age        string `json:"age"`
	State      string `json:"state"`
	Income     string `json:"income"`
	Category   string `json:"category"`
	Occupation string `json:"occupation"`
	Gender     string `json:"gender"`
	Education  string `json:"education"`
}

func (p profileParams) profile() eligibility.Profile {
	return eligibility.Profile{
		Age:        p.Age,
		State:      p.State,
		Income:     p.Income,
		Category:   p.Category,
		Occupation: p.Occupation,
		Gender:     p.Gender,
		Education:  p.Education,
	}
}

type checkEligibilityParams struct {
	profileParams
	Search         string `json:"search"`
	SchemeCategory string `json:"scheme_category"`
	EligibleLimit  int    `json:"eligible_limit"`
	PartialLimit   int    `json:"partial_limit"`
}

type schemeMatch struct {
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Score    int    `json:"score"`
	Level    string `json:"level"`
	Category string `json:"category,omitempty"`
	Benefits string `json:"benefits"`
	Saved    bool   `json:"saved"`
}

type checkEligibilityResult struct {
	LoadState   scheme.LoadState   `json:"load_state"`
	DatasetSize int                `json:"dataset_size"`
	Counts      eligibility.Counts `json:"counts"`
	Eligible    []schemeMatch      `json:"eligible"`
	Partial     []schemeMatch      `json:"partial"`
	Summary     string             `json:"summary"`
}

func (s *Server) handleCheckEligibility(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p checkEligibilityParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	schemes, err := s.schemes(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := s.savedSet(ctx)
	if err != nil {
		return nil, err
	}

	profile := p.profile()
	filters := eligibility.Filters{Search: p.Search, Category: p.SchemeCategory}

	limits := s.config.Limits()
	if p.EligibleLimit > 0 {
		limits.Eligible = p.EligibleLimit
	}
	if p.PartialLimit > 0 {
		limits.Partial = p.PartialLimit
	}

	view := eligibility.Screen(schemes, profile, filters).Display(limits)
	s.logger.Debug("check_eligibility",
		append(logger.ProfileFields(profile), logger.CountsFields(view.Counts)...)...)

	result := checkEligibilityResult{
		LoadState:   s.catalog.State(),
		DatasetSize: len(schemes),
		Counts:      view.Counts,
		Eligible:    toMatches(view.Eligible, saved),
		Partial:     toMatches(view.Partial, saved),
	}
	result.Summary = summarize(result)

	return result, nil
}

func toMatches(results []eligibility.Result, saved database.SavedSet) []schemeMatch {
	matches := make([]schemeMatch, len(results))
	for i, r := range results {
		matches[i] = schemeMatch{
			Name:     r.Scheme.Name,
			Slug:     r.Scheme.Slug,
			Score:    r.Score,
			Level:    r.Scheme.CardLevel(),
			Category: r.Scheme.Category,
			Benefits: r.Scheme.CardBenefits(),
			Saved:    saved.Has(r.Scheme.Name),
		}
	}
	return matches
}

func summarize(r checkEligibilityResult) string {
	if r.LoadState == scheme.StateFailed {
		return "The scheme dataset could not be loaded, so no schemes were checked."
	}
	if r.Counts.Eligible == 0 && r.Counts.Partial == 0 {
		return "No matching schemes found."
	}

	summary := fmt.Sprintf("%d eligible scheme(s)", r.Counts.Eligible)
	if len(r.Eligible) < r.Counts.Eligible {
		summary += fmt.Sprintf(", top %d shown", len(r.Eligible))
	}
	summary += fmt.Sprintf("; %d partial match(es)", r.Counts.Partial)
	if len(r.Partial) < r.Counts.Partial {
		summary += fmt.Sprintf(", top %d shown", len(r.Partial))
	}
	if r.Counts.Total < r.DatasetSize {
		return summary + fmt.Sprintf(" among %d matching the filters, out of %d checked.", r.Counts.Total, r.DatasetSize)
	}
	return summary + fmt.Sprintf(" out of %d checked.", r.DatasetSize)
}

type getSchemeParams struct {
	profileParams
	Identifier string `json:"identifier"`
}

func (s *Server) handleGetScheme(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getSchemeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if strings.TrimSpace(p.Identifier) == "" {
		return nil, fmt.Errorf("identifier is required")
	}

	if _, err := s.schemes(ctx); err != nil {
		return nil, err
	}

	sc := s.catalog.Find(p.Identifier)
	if sc == nil {
		return nil, fmt.Errorf("scheme not found: %s", p.Identifier)
	}

	saved, err := s.savedSet(ctx)
	if err != nil {
		return nil, err
	}

	return output.NewSchemeDetail(sc, p.profile(), saved.Has(sc.Name)), nil
}

func (s *Server) handleListCategories(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if _, err := s.schemes(ctx); err != nil {
		return nil, err
	}
	return s.catalog.Categories(), nil
}

func (s *Server) handleListSaved(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if s.db == nil {
		return []database.SavedScheme{}, nil
	}
	saved, err := s.db.ListSaved(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return saved, nil
}

type toggleSavedParams struct {
	Name string `json:"name"`
}

type toggleSavedResult struct {
	Name  string `json:"name"`
	Saved bool   `json:"saved"`
}

func (s *Server) handleToggleSaved(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p toggleSavedParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if s.db == nil {
		return nil, fmt.Errorf("saved schemes are not available")
	}

	name := p.Name
	if _, err := s.schemes(ctx); err != nil {
		return nil, err
	}
	if sc := s.catalog.Find(p.Name); sc != nil {
		name = sc.Name
	} else if s.catalog.State() == scheme.StateReady {
		// a saved name that left the dataset can still be removed
		isSaved, err := s.db.IsSaved(ctx, p.Name)
		if err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if !isSaved {
			return nil, fmt.Errorf("scheme not found: %s", p.Name)
		}
	}

	saved, err := s.db.ToggleSaved(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	s.logger.Info("toggled saved scheme", zap.String("name", name), zap.Bool("saved", saved))

	return toggleSavedResult{Name: name, Saved: saved}, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriSummary:
		return s.getResourceSummary(ctx)
	case uriCategories:
		return s.getResourceCategories(ctx)
	case uriSaved:
		return s.getResourceSaved(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	if _, err := s.schemes(ctx); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Scheme Dataset Summary\n======================\n")
	fmt.Fprintf(&b, "Status:        %s\n", s.catalog.State())
	if err := s.catalog.Err(); err != nil {
		fmt.Fprintf(&b, "Error:         %v\n", err)
	}
	fmt.Fprintf(&b, "Total schemes: %d\n", s.catalog.Len())

	levels := s.catalog.LevelCounts()
	if len(levels) > 0 {
		b.WriteString("\nBy level:\n")
		for _, l := range sortedKeys(levels) {
			fmt.Fprintf(&b, "  - %s: %d\n", l, levels[l])
		}
	}

	cats := s.catalog.Categories()
	if len(cats) > 0 {
		b.WriteString("\nTop categories:\n")
		for i, c := range cats {
			if i == 10 {
				break
			}
			fmt.Fprintf(&b, "  - %s: %d\n", c.Category, c.Count)
		}
	}

	return b.String(), nil
}

func (s *Server) getResourceCategories(ctx context.Context) (string, error) {
	if _, err := s.schemes(ctx); err != nil {
		return "", err
	}

	result := "Scheme Categories\n=================\n\n"
	cats := s.catalog.Categories()
	if len(cats) == 0 {
		return result + "No categories. The dataset is empty or failed to load.\n", nil
	}

	for _, c := range cats {
		result += fmt.Sprintf("- %s (%d)\n", c.Category, c.Count)
	}
	return result, nil
}

func (s *Server) getResourceSaved(ctx context.Context) (string, error) {
	result := "Saved Schemes\n=============\n\n"
	if s.db == nil {
		return result + "Saved schemes are not available.\n", nil
	}

	saved, err := s.db.ListSaved(ctx)
	if err != nil {
		return "", err
	}
	if len(saved) == 0 {
		return result + "No saved schemes yet. Use toggle_saved to save one.\n", nil
	}

	for _, sv := range saved {
		result += fmt.Sprintf("- %s (saved %s)\n", sv.Name, sv.SavedAt.Format("Jan 02, 2006"))
	}
	return result, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

package eligibility

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

func testSchemes() []scheme.Scheme {
	return []scheme.Scheme{
		{Name: "Bihar Farm Support", Eligibility: "Farmers resident of Bihar", Level: "State", Category: "Agriculture"},
		{Name: "National Scholarship", Eligibility: "Students aged 18 to 25 years", Level: "Central", Category: "Education, Learning", Benefits: "Tuition fee waiver"},
		{Name: "Kerala Fisheries Aid", Eligibility: "Fisherman families of Kerala", Level: "State", Category: "Fisheries"},
		{Name: "Mahila Udyam", Eligibility: "Women entrepreneurs across the entire country", Level: "Central", Category: "Business"},
	}
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Scheme.Name
	}
	return out
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierEligible},
		{70, TierEligible},
		{69, TierPartial},
		{40, TierPartial},
		{39, TierUnmatched},
		{0, TierUnmatched},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(tt.score))
		})
	}
}

func TestScoreAndRank_OrdersByScore(t *testing.T) {
	p := Profile{State: "Kerala", Occupation: "Fisherman"}
	results := ScoreAndRank(testSchemes(), p)

	require.Len(t, results, 4)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "Kerala Fisheries Aid", results[0].Scheme.Name)
	for _, r := range results {
		assert.Equal(t, TierFor(r.Score), r.Tier)
	}
}

func TestScoreAndRank_TiesKeepDatasetOrder(t *testing.T) {
	schemes := testSchemes()
	results := ScoreAndRank(schemes, Profile{})

	assert.Equal(t, []string{
		"Bihar Farm Support",
		"National Scholarship",
		"Kerala Fisheries Aid",
		"Mahila Udyam",
	}, names(results))
	for _, r := range results {
		assert.Equal(t, NeutralScore, r.Score)
	}
}

func TestScoreAndRank_PointsAtSourceRecords(t *testing.T) {
	schemes := testSchemes()
	results := ScoreAndRank(schemes, Profile{State: "Bihar"})

	for _, r := range results {
		found := false
		for i := range schemes {
			if r.Scheme == &schemes[i] {
				found = true
			}
		}
		assert.True(t, found, "result %q does not reference the loaded record", r.Scheme.Name)
	}
}

func TestScoreAndRank_Deterministic(t *testing.T) {
	schemes := testSchemes()
	p := Profile{Age: "22", State: "Kerala", Gender: "Female", Occupation: "Student"}

	first := Classify(ScoreAndRank(schemes, p))
	second := Classify(ScoreAndRank(schemes, p))

	assert.Equal(t, names(first.Eligible), names(second.Eligible))
	assert.Equal(t, names(first.Partial), names(second.Partial))
	assert.Equal(t, names(first.Unmatched), names(second.Unmatched))
}

func TestClassify_Boundaries(t *testing.T) {
	s := &scheme.Scheme{}
	results := []Result{
		{Scheme: s, Score: 70},
		{Scheme: s, Score: 69},
		{Scheme: s, Score: 40},
		{Scheme: s, Score: 39},
	}

	c := Classify(results)

	require.Len(t, c.Eligible, 1)
	require.Len(t, c.Partial, 2)
	require.Len(t, c.Unmatched, 1)
	assert.Equal(t, 70, c.Eligible[0].Score)
	assert.Equal(t, 69, c.Partial[0].Score)
	assert.Equal(t, 40, c.Partial[1].Score)
	assert.Equal(t, 39, c.Unmatched[0].Score)
	assert.Equal(t, Counts{Eligible: 1, Partial: 2, Unmatched: 1, Total: 4}, c.Counts())
}

func TestApplyFilters(t *testing.T) {
	results := ScoreAndRank(testSchemes(), Profile{})

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"no filters", Filters{}, names(results)},
		{"search matches name", Filters{Search: "kerala"}, []string{"Kerala Fisheries Aid"}},
		{"search matches benefits", Filters{Search: "TUITION"}, []string{"National Scholarship"}},
		{"category contains", Filters{Category: "education"}, []string{"National Scholarship"}},
		{"category all", Filters{Category: "All"}, names(results)},
		{"both filters", Filters{Search: "aid", Category: "business"}, []string{}},
		{"no match", Filters{Search: "space travel"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(results, tt.filters)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestApplyFilters_DoesNotChangeScores(t *testing.T) {
	p := Profile{State: "Kerala", Gender: "Female"}
	ranked := ScoreAndRank(testSchemes(), p)
	before := make(map[string]int)
	for _, r := range ranked {
		before[r.Scheme.Name] = r.Score
	}

	filtered := ApplyFilters(ranked, Filters{Category: "Business"})
	require.Len(t, filtered, 1)
	assert.Equal(t, before[filtered[0].Scheme.Name], filtered[0].Score)

	unfiltered := Classify(ranked).Counts()
	narrowed := Classify(filtered).Counts()
	assert.Equal(t, 4, unfiltered.Total)
	assert.Equal(t, 1, narrowed.Total)
}

func TestDisplay_CapsButKeepsCounts(t *testing.T) {
	s := &scheme.Scheme{}
	var results []Result
	for i := 0; i < 25; i++ {
		results = append(results, Result{Scheme: s, Score: 90})
	}
	for i := 0; i < 12; i++ {
		results = append(results, Result{Scheme: s, Score: 50})
	}
	results = append(results, Result{Scheme: s, Score: 10})

	view := Classify(results).Display(DefaultLimits())

	assert.Len(t, view.Eligible, 20)
	assert.Len(t, view.Partial, 10)
	assert.Equal(t, 25, view.Counts.Eligible)
	assert.Equal(t, 12, view.Counts.Partial)
	assert.Equal(t, 1, view.Counts.Unmatched)
	assert.True(t, view.Truncated())

	uncapped := Classify(results).Display(Limits{})
	assert.Len(t, uncapped.Eligible, 25)
	assert.Len(t, uncapped.Partial, 12)
	assert.False(t, uncapped.Truncated())
}

func TestScreen_EmptyDataset(t *testing.T) {
	c := Screen(nil, Profile{Age: "30", State: "Goa"}, Filters{Search: "x"})

	assert.Empty(t, c.Eligible)
	assert.Empty(t, c.Partial)
	assert.Empty(t, c.Unmatched)
	assert.Equal(t, Counts{}, c.Counts())
	assert.Equal(t, Counts{}, c.Display(DefaultLimits()).Counts)
}

func TestGetStats(t *testing.T) {
	s := &scheme.Scheme{}
	stats := GetStats([]Result{
		{Scheme: s, Score: 80},
		{Scheme: s, Score: 50},
		{Scheme: s, Score: 20},
	})

	assert.Equal(t, Stats{Total: 3, Eligible: 1, Partial: 1, Unmatched: 1, AverageScore: 50, TopScore: 80}, stats)
	assert.Equal(t, Stats{}, GetStats(nil))
}

func TestProfile(t *testing.T) {
	p := Profile{Age: "30", State: " "}

	assert.False(t, p.IsEmpty())
	assert.Equal(t, []Field{FieldState}, p.Missing(FieldAge, FieldState))

	p.Set(FieldState, "Goa")
	assert.Empty(t, p.Missing(FieldAge, FieldState))
	assert.Equal(t, "Goa", p.Get(FieldState))

	p.Reset()
	assert.True(t, p.IsEmpty())

	f, ok := ParseField("Occupation")
	assert.True(t, ok)
	assert.Equal(t, FieldOccupation, f)
	_, ok = ParseField("shoe size")
	assert.False(t, ok)
}

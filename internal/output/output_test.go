package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vijay-prabhu/scheme-sahayak/internal/database"
	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

func testResults() []eligibility.Result {
	schemes := []scheme.Scheme{
		{Name: "Widow Pension", Level: "State", Category: "Social welfare", Benefits: "Rs 1000 a month"},
		{Name: "Crop Cover", Level: "Central", Category: "Agriculture, Insurance", Benefits: "Insurance"},
		{Name: "Study Grant", Category: "Education"},
	}
	return []eligibility.Result{
		{Scheme: &schemes[0], Score: 100, Tier: eligibility.TierEligible},
		{Scheme: &schemes[1], Score: 50, Tier: eligibility.TierPartial},
		{Scheme: &schemes[2], Score: 0, Tier: eligibility.TierUnmatched},
	}
}

func TestOutputTo_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := OutputTo(&buf, "yaml", testResults())
	assert.Error(t, err)
}

func TestTableTo_UnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	err := TableTo(&buf, 42)
	assert.Error(t, err)
}

func TestReportTable(t *testing.T) {
	results := testResults()
	view := eligibility.Classify(results).Display(eligibility.DefaultLimits())

	var buf bytes.Buffer
	err := TableTo(&buf, &Report{
		View:      view,
		LoadState: scheme.StateReady,
		Saved:     database.NewSavedSet("Widow Pension"),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Found 1 schemes you can apply for and 1 partial matches")
	assert.Contains(t, out, "ELIGIBLE")
	assert.Contains(t, out, "PARTIAL MATCH")
	assert.Contains(t, out, savedMark+" Widow Pension")
	assert.Contains(t, out, "Crop Cover")
	assert.NotContains(t, out, "Study Grant")
	assert.Contains(t, out, "1 schemes did not match")
}

func TestReportTable_Capped(t *testing.T) {
	var schemes []scheme.Scheme
	for i := 0; i < 25; i++ {
		schemes = append(schemes, scheme.Scheme{Name: fmt.Sprintf("Scheme %02d", i)})
	}
	var results []eligibility.Result
	for i := range schemes {
		results = append(results, eligibility.Result{Scheme: &schemes[i], Score: 90, Tier: eligibility.TierEligible})
	}

	var buf bytes.Buffer
	err := TableTo(&buf, &Report{
		View:      eligibility.Classify(results).Display(eligibility.DefaultLimits()),
		LoadState: scheme.StateReady,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Found 25 schemes")
	assert.Contains(t, out, "Showing top 20 of 25 eligible schemes")
	assert.NotContains(t, out, "Scheme 24")
}

func TestReportTable_Empty(t *testing.T) {
	tests := []struct {
		name   string
		report *Report
		want   string
	}{
		{
			name:   "no matches",
			report: &Report{LoadState: scheme.StateReady},
			want:   "No matching schemes found",
		},
		{
			name:   "load failed",
			report: &Report{LoadState: scheme.StateFailed},
			want:   "Could not load the scheme dataset",
		},
		{
			name: "filters shown",
			report: &Report{
				LoadState: scheme.StateReady,
				Filters:   eligibility.Filters{Search: "pension", Category: "all"},
			},
			want: `Filters: search "pension"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, TableTo(&buf, tt.report))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestSchemeDetail(t *testing.T) {
	s := &scheme.Scheme{
		Name:        "Kisan Support",
		Level:       "Central",
		Category:    "Agriculture",
		Eligibility: "Farmers aged 18 to 60 years",
	}
	d := NewSchemeDetail(s, eligibility.Profile{Age: "30", Occupation: "Farmer"}, true)
	require.NotNil(t, d.Assessment)
	assert.Equal(t, 100, d.Assessment.Score)

	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, d))

	out := buf.String()
	assert.Contains(t, out, savedMark+" Kisan Support")
	assert.Contains(t, out, "Match:       100% (eligible)")
	assert.Contains(t, out, "Why this score:")
	assert.Contains(t, out, scheme.FallbackBenefits)
	assert.Contains(t, out, scheme.FallbackDocuments)
	assert.Contains(t, out, "official guidelines")
}

func TestSchemeDetail_NoProfile(t *testing.T) {
	d := NewSchemeDetail(&scheme.Scheme{Name: "Kisan Support"}, eligibility.Profile{}, false)
	assert.Nil(t, d.Assessment)

	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, d))
	assert.NotContains(t, buf.String(), "Why this score")
	assert.Contains(t, buf.String(), "Level:       "+scheme.FallbackLevel)
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four five", 9)
	assert.Equal(t, "one two\nthree\nfour five", got)
	assert.Equal(t, "short", wordWrap("short", 20))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("  abc  ", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "योजना", truncate("योजना", 5))
}

func TestExportRows(t *testing.T) {
	rows := ToExportRows(testResults(), database.NewSavedSet("Crop Cover"))
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "eligible", rows[0].Tier)
	assert.False(t, rows[0].Saved)
	assert.True(t, rows[1].Saved)
	assert.Equal(t, 3, rows[2].Rank)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ToExportRows(testResults(), nil)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "Widow Pension", records[1][1])
	assert.Equal(t, "Agriculture, Insurance", records[2][6])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, ToExportRows(testResults(), nil)))

	var rows []ExportRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Len(t, rows, 3)
	assert.True(t, strings.Contains(buf.String(), `"scheme_name": "Widow Pension"`))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, ToExportRows(testResults(), nil)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(XLSXSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "scheme_name", header)

	name, err := f.GetCellValue(XLSXSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Widow Pension", name)

	score, err := f.GetCellValue(XLSXSheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "50", score)
}

package scheme

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `scheme_name,slug,details,benefits,eligibility,application,documents,level,schemeCategory,tags
PM Kisan,pm-kisan,Income support to farmers,"₹6,000 per year",All landholding farmers,Online,Aadhaar,Central,"Agriculture,Rural & Environment","farmer, income"
"Kerala Fishermen Aid",kfa,"Support for fishermen
during lean season",Monthly aid,Fishermen of Kerala,,,State,Fisheries,
`

func TestParse(t *testing.T) {
	schemes, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, schemes, 2)

	first := schemes[0]
	assert.Equal(t, "PM Kisan", first.Name)
	assert.Equal(t, "pm-kisan", first.Slug)
	assert.Equal(t, "₹6,000 per year", first.Benefits)
	assert.Equal(t, "Central", first.Level)
	assert.Equal(t, []string{"Agriculture", "Rural & Environment"}, first.Categories())
	assert.Equal(t, []string{"farmer", "income"}, first.TagList())

	second := schemes[1]
	assert.Equal(t, "Kerala Fishermen Aid", second.Name)
	assert.Equal(t, "Support for fishermen\nduring lean season", second.Details)
	assert.Empty(t, second.Application)
	assert.Empty(t, second.Tags)
}

func TestParse_HeaderVariants(t *testing.T) {
	input := "\ufeffScheme Name,Scheme_Category,LEVEL,Ministry\nAtal Pension,Social Welfare,Central,Finance\n"

	schemes, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, schemes, 1)

	s := schemes[0]
	assert.Equal(t, "Atal Pension", s.Name)
	assert.Equal(t, "Social Welfare", s.Category)
	assert.Equal(t, "Central", s.Level)
	assert.Equal(t, map[string]string{"Ministry": "Finance"}, s.Extra)
	assert.Empty(t, s.Eligibility)
}

func TestParse_RaggedAndBlankRows(t *testing.T) {
	input := "scheme_name,details,level\nShort Row\n,,\nLong Row,desc,State,unexpected\n"

	schemes, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, schemes, 2)

	assert.Equal(t, "Short Row", schemes[0].Name)
	assert.Empty(t, schemes[0].Details)
	assert.Equal(t, "Long Row", schemes[1].Name)
	assert.Equal(t, "State", schemes[1].Level)
	assert.Nil(t, schemes[1].Extra)
}

func TestParse_HeaderOnly(t *testing.T) {
	schemes, err := Parse(strings.NewReader("scheme_name,details\n"))
	require.NoError(t, err)
	assert.Empty(t, schemes)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"bare quote", "scheme_name,details\nBad,va\"lue\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := Parse(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrNoHeader))
}

func TestLoad_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemes.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	src, err := NewSource(path)
	require.NoError(t, err)

	var lastProgress int
	schemes, err := Load(context.Background(), src, LoadOptions{
		Progress: func(rows int) { lastProgress = rows },
	})
	require.NoError(t, err)
	assert.Len(t, schemes, 2)
	assert.Equal(t, 2, lastProgress)
}

func TestLoad_MissingFile(t *testing.T) {
	src, err := NewFileSource(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)

	_, err = Load(context.Background(), src, LoadOptions{})
	assert.Error(t, err)
}

func TestLoad_HTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schemes.csv":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(sampleCSV))
		default:
			http.Error(w, "not here", http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Run("ok", func(t *testing.T) {
		src, err := NewSource(server.URL + "/schemes.csv")
		require.NoError(t, err)
		assert.IsType(t, &HTTPSource{}, src)

		schemes, err := Load(context.Background(), src, LoadOptions{})
		require.NoError(t, err)
		assert.Len(t, schemes, 2)
	})

	t.Run("not found", func(t *testing.T) {
		src := NewHTTPSource(server.URL + "/other.csv")

		_, err := Load(context.Background(), src, LoadOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestNewSource_Empty(t *testing.T) {
	_, err := NewSource("  ")
	assert.Error(t, err)
}

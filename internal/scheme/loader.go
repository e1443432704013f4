package scheme

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrNoHeader is returned when the dataset has no header row
var ErrNoHeader = errors.New("dataset has no header row")

// column identifies a recognised dataset column
type column int

const (
	colUnknown column = iota
	colName
	colSlug
	colDetails
	colBenefits
	colEligibility
	colApplication
	colDocuments
	colLevel
	colCategory
	colTags
)

// knownColumns maps normalised header names to columns
var knownColumns = map[string]column{
	"schemename":     colName,
	"name":           colName,
	"slug":           colSlug,
	"details":        colDetails,
	"benefits":       colBenefits,
	"eligibility":    colEligibility,
	"application":    colApplication,
	"documents":      colDocuments,
	"level":          colLevel,
	"schemecategory": colCategory,
	"category":       colCategory,
	"tags":           colTags,
}

// ProgressFunc is called with the number of rows read so far
type ProgressFunc func(rows int)

// LoadOptions configures dataset loading
type LoadOptions struct {
	Progress ProgressFunc
}

// Load reads and parses the full dataset from src
func Load(ctx context.Context, src Source, opts LoadOptions) ([]Scheme, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	schemes, err := parse(ctx, rc, opts.Progress)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", src.Name(), err)
	}
	return schemes, nil
}

// Parse reads delimited text with a header row into schemes, keeping row order
func Parse(r io.Reader) ([]Scheme, error) {
	return parse(context.Background(), r, nil)
}

func parse(ctx context.Context, r io.Reader, progress ProgressFunc) ([]Scheme, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	columns := make([]column, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		names[i] = strings.TrimSpace(h)
		columns[i] = knownColumns[normalizeHeader(h)]
	}

	schemes := make([]Scheme, 0, 256)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}

		schemes = append(schemes, buildScheme(record, columns, names))
		if progress != nil {
			progress(len(schemes))
		}
	}

	return schemes, nil
}

func buildScheme(record []string, columns []column, names []string) Scheme {
	var s Scheme
	for i, value := range record {
		if i >= len(columns) {
			// Values past the header have no name to file them under
			break
		}
		switch columns[i] {
		case colName:
			s.Name = strings.TrimSpace(value)
		case colSlug:
			s.Slug = strings.TrimSpace(value)
		case colDetails:
			s.Details = value
		case colBenefits:
			s.Benefits = value
		case colEligibility:
			s.Eligibility = value
		case colApplication:
			s.Application = value
		case colDocuments:
			s.Documents = value
		case colLevel:
			s.Level = strings.TrimSpace(value)
		case colCategory:
			s.Category = strings.TrimSpace(value)
		case colTags:
			s.Tags = value
		default:
			if names[i] == "" {
				continue
			}
			if s.Extra == nil {
				s.Extra = make(map[string]string)
			}
			s.Extra[names[i]] = value
		}
	}
	return s
}

// normalizeHeader lowercases a header and drops everything but letters and digits
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

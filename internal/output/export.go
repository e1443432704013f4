package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/vijay-prabhu/scheme-sahayak/internal/database"
	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
)

// ExportRow is one scored scheme flattened for export
type ExportRow struct {
	Rank        int    `json:"rank"`
	Name        string `json:"scheme_name"`
	Slug        string `json:"slug"`
	Score       int    `json:"score"`
	Tier        string `json:"tier"`
	Level       string `json:"level"`
	Category    string `json:"scheme_category"`
	Benefits    string `json:"benefits"`
	Eligibility string `json:"eligibility"`
	Documents   string `json:"documents"`
	Saved       bool   `json:"saved"`
}

var exportHeader = []string{
	"rank", "scheme_name", "slug", "score", "tier", "level",
	"scheme_category", "benefits", "eligibility", "documents", "saved",
}

// ToExportRows flattens ranked results, numbering them from 1
func ToExportRows(results []eligibility.Result, saved database.SavedSet) []ExportRow {
	rows := make([]ExportRow, len(results))
	for i, r := range results {
		rows[i] = ExportRow{
			Rank:        i + 1,
			Name:        r.Scheme.Name,
			Slug:        r.Scheme.Slug,
			Score:       r.Score,
			Tier:        string(r.Tier),
			Level:       r.Scheme.Level,
			Category:    r.Scheme.Category,
			Benefits:    r.Scheme.Benefits,
			Eligibility: r.Scheme.Eligibility,
			Documents:   r.Scheme.Documents,
			Saved:       saved.Has(r.Scheme.Name),
		}
	}
	return rows
}

func (r ExportRow) record() []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.Name,
		r.Slug,
		strconv.Itoa(r.Score),
		r.Tier,
		r.Level,
		r.Category,
		r.Benefits,
		r.Eligibility,
		r.Documents,
		strconv.FormatBool(r.Saved),
	}
}

// WriteCSV writes rows as comma separated values with a header
func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rows as an indented JSON array
func WriteJSON(w io.Writer, rows []ExportRow) error {
	if err := JSONTo(w, rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// XLSXSheet is the worksheet name used for exports
const XLSXSheet = "Schemes"

// WriteXLSX writes rows as an Excel workbook
func WriteXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheet); err != nil {
		return err
	}

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(XLSXSheet, cell, h); err != nil {
			return err
		}
	}

	for i, r := range rows {
		row := i + 2
		values := []interface{}{
			r.Rank, r.Name, r.Slug, r.Score, r.Tier, r.Level,
			r.Category, r.Benefits, r.Eligibility, r.Documents, r.Saved,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(XLSXSheet, cell, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(XLSXSheet, "B", "B", 40) // name
	_ = f.SetColWidth(XLSXSheet, "G", "G", 24) // category
	_ = f.SetColWidth(XLSXSheet, "H", "J", 50) // long text

	if err := f.SetPanes(XLSXSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

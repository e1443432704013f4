package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

// Disclaimer is printed under every detail view
const Disclaimer = "Match scores are estimates from the scheme text. Check the official guidelines before applying."

// SchemeDetail is one scheme with, optionally, how a profile scored against it
type SchemeDetail struct {
	Scheme     *scheme.Scheme          `json:"scheme"`
	Assessment *eligibility.Assessment `json:"assessment,omitempty"`
	Saved      bool                    `json:"saved"`
}

// NewSchemeDetail evaluates s for p when the profile carries any answers
func NewSchemeDetail(s *scheme.Scheme, p eligibility.Profile, saved bool) *SchemeDetail {
	d := &SchemeDetail{Scheme: s, Saved: saved}
	if !p.IsEmpty() {
		a := eligibility.Evaluate(s, p)
		d.Assessment = &a
	}
	return d
}

func schemeDetail(w io.Writer, d *SchemeDetail) error {
	s := d.Scheme

	fmt.Fprintln(w, strings.Repeat("=", 60))
	title := s.Name
	if d.Saved {
		title = savedMark + " " + title
	}
	fmt.Fprintln(w, wordWrap(title, 60))
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "Level:       %s\n", s.DisplayLevel())
	if cats := s.Categories(); len(cats) > 0 {
		fmt.Fprintf(w, "Category:    %s\n", strings.Join(cats, ", "))
	}
	if tags := s.TagList(); len(tags) > 0 {
		fmt.Fprintf(w, "Tags:        %s\n", strings.Join(tags, ", "))
	}
	if d.Assessment != nil {
		fmt.Fprintf(w, "Match:       %d%% (%s)\n", d.Assessment.Score, d.Assessment.Tier)
	}

	section(w, "Details", s.DisplayDetails())
	section(w, "Benefits", s.DisplayBenefits())
	section(w, "Eligibility", s.DisplayEligibility())
	section(w, "Application Process", s.DisplayApplication())
	section(w, "Documents Required", s.DisplayDocuments())

	if d.Assessment != nil && len(d.Assessment.Criteria) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Why this score:")
		for _, c := range d.Assessment.Criteria {
			fmt.Fprintf(w, "  %s %-11s %s\n", creditMark(c.Credit), c.Field, c.Reason)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintln(w, wordWrap(Disclaimer, 60))

	return nil
}

func section(w io.Writer, heading, body string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", heading)
	for _, line := range strings.Split(wordWrap(strings.TrimSpace(body), 76), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func creditMark(credit float64) string {
	switch {
	case credit >= eligibility.CreditFull:
		return "[+]"
	case credit > eligibility.CreditNone:
		return "[~]"
	default:
		return "[-]"
	}
}

// wordWrap wraps text at the specified width
func wordWrap(text string, width int) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if len([]rune(line)) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if len([]rune(currentLine))+1+len([]rune(word)) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
		result.WriteString("\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}

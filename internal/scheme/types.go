package scheme

import "strings"

// Display fallbacks for fields the dataset leaves empty
const (
	FallbackLevel       = "Not specified"
	FallbackCardLevel   = "State"
	FallbackDetails     = "Details not available"
	FallbackBenefits    = "Benefits not specified"
	FallbackEligibility = "Eligibility criteria not specified"
	FallbackApplication = "Application process not specified"
	FallbackDocuments   = "Document list not available"
)

// Scheme is one benefit program loaded from the dataset.
// Values are never modified after loading.
type Scheme struct {
	Name        string            `json:"scheme_name"`
	Slug        string            `json:"slug,omitempty"`
	Details     string            `json:"details,omitempty"`
	Benefits    string            `json:"benefits,omitempty"`
	Eligibility string            `json:"eligibility,omitempty"`
	Application string            `json:"application,omitempty"`
	Documents   string            `json:"documents,omitempty"`
	Level       string            `json:"level,omitempty"`
	Category    string            `json:"scheme_category,omitempty"`
	Tags        string            `json:"tags,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// TagList returns the comma separated tags, blanks dropped
func (s *Scheme) TagList() []string {
	return splitList(s.Tags)
}

// Categories returns the category labels stored in the category cell
func (s *Scheme) Categories() []string {
	return splitList(s.Category)
}

// DisplayLevel returns the jurisdiction or its detail-view fallback
func (s *Scheme) DisplayLevel() string {
	return orDefault(s.Level, FallbackLevel)
}

// DisplayDetails returns the summary or its fallback
func (s *Scheme) DisplayDetails() string {
	return orDefault(s.Details, FallbackDetails)
}

// DisplayBenefits returns the benefits or its fallback
func (s *Scheme) DisplayBenefits() string {
	return orDefault(s.Benefits, FallbackBenefits)
}

// DisplayEligibility returns the eligibility text or its fallback
func (s *Scheme) DisplayEligibility() string {
	return orDefault(s.Eligibility, FallbackEligibility)
}

// DisplayApplication returns the application process or its fallback
func (s *Scheme) DisplayApplication() string {
	return orDefault(s.Application, FallbackApplication)
}

// DisplayDocuments returns the document list or its fallback
func (s *Scheme) DisplayDocuments() string {
	return orDefault(s.Documents, FallbackDocuments)
}

// CardLevel is the short jurisdiction label used in result listings
func (s *Scheme) CardLevel() string {
	return orDefault(s.Level, FallbackCardLevel)
}

// CardDetails is the summary snippet shown in result listings
func (s *Scheme) CardDetails() string {
	return Snippet(s.Details, 150)
}

// CardBenefits is the benefits snippet shown in result listings
func (s *Scheme) CardBenefits() string {
	return Snippet(s.Benefits, 50)
}

// Snippet cuts s to at most n runes, adding an ellipsis when it was cut.
func Snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

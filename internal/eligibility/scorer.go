package eligibility

import (
	"math"
	"strings"

	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

// NeutralScore is returned when the profile has nothing to evaluate
const NeutralScore = 50

// Criterion is the outcome of one profile field against one scheme
type Criterion struct {
	Field  Field   `json:"field"`
	Value  string  `json:"value"`
	Credit float64 `json:"credit"`
	Reason string  `json:"reason"`
}

// Assessment is a score together with the per-field credits behind it
type Assessment struct {
	Score    int         `json:"score"`
	Tier     Tier        `json:"tier"`
	Criteria []Criterion `json:"criteria,omitempty"`
}

// Matched returns the summed credit across criteria
func (a Assessment) Matched() float64 {
	var sum float64
	for _, c := range a.Criteria {
		sum += c.Credit
	}
	return sum
}

// Score computes the match score of a scheme for a profile, 0 to 100
func Score(s *scheme.Scheme, p Profile) int {
	return Evaluate(s, p).Score
}

// Evaluate scores a scheme and explains each evaluated field
func Evaluate(s *scheme.Scheme, p Profile) Assessment {
	text := matchText(s)

	var criteria []Criterion
	add := func(f Field, rule func(text, value string) (float64, string)) {
		value := p.Get(f)
		if value == "" {
			return
		}
		credit, reason := rule(text, value)
		criteria = append(criteria, Criterion{Field: f, Value: value, Credit: credit, Reason: reason})
	}

	add(FieldAge, ageRule)
	add(FieldState, func(text, value string) (float64, string) {
		return stateRule(text, s.Level, value)
	})
	add(FieldIncome, incomeRule)
	add(FieldCategory, categoryRule)
	add(FieldOccupation, occupationRule)
	add(FieldGender, genderRule)

	a := Assessment{Criteria: criteria}
	if len(criteria) == 0 {
		a.Score = NeutralScore
	} else {
		a.Score = int(math.Floor(a.Matched()/float64(len(criteria))*100 + 0.5))
	}
	a.Tier = TierFor(a.Score)
	return a
}

// matchText is the lowercased text all rules search
func matchText(s *scheme.Scheme) string {
	return strings.ToLower(s.Eligibility) + " " + strings.ToLower(s.Details)
}

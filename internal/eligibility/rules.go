package eligibility

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Partial credits for criteria the scheme text does not pin down
const (
	CreditFull           = 1.0
	CreditNone           = 0.0
	CreditUnstatedAge    = 0.5
	CreditUnstatedGroup  = 0.5
	CreditOpenToAll      = 0.5
	CreditUnstatedIncome = 0.3
)

// Income figures outside this open interval are not treated as a ceiling
const (
	minPlausibleIncome = 1_000
	maxPlausibleIncome = 10_000_000
)

const adultAge = 18

var (
	ageRangePattern = regexp.MustCompile(`(\d+)\s*(?:to|-|–|and)\s*(\d+)\s*years?`)
	amountPattern   = regexp.MustCompile(`(?i)₹?\s*(\d+(?:,\d+)*)\s*(?:rupees|rs|inr)?`)
)

// ageRange is an inclusive span of years taken from scheme text
type ageRange struct {
	min, max float64
}

func (r ageRange) contains(age float64) bool {
	return age >= r.min && age <= r.max
}

func (r ageRange) String() string {
	return fmt.Sprintf("%g-%g years", r.min, r.max)
}

// extractAgeRanges finds every "N to M years" style span in text
func extractAgeRanges(text string) []ageRange {
	var ranges []ageRange
	for _, m := range ageRangePattern.FindAllStringSubmatch(text, -1) {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		ranges = append(ranges, ageRange{min: lo, max: hi})
	}
	return ranges
}

// extractIncomeCeiling returns whether text mentions any amount, and the
// largest plausible one if there is such an amount
func extractIncomeCeiling(text string) (mentioned bool, ceiling float64, ok bool) {
	matches := amountPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return false, 0, false
	}

	for _, m := range matches {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if amount <= minPlausibleIncome || amount >= maxPlausibleIncome {
			continue
		}
		if !ok || amount > ceiling {
			ceiling = amount
			ok = true
		}
	}
	return true, ceiling, ok
}

// parseLeadingInt reads an optionally signed integer prefix, skipping
// leading whitespace. "25 years" reads as 25; "abc" does not parse.
func parseLeadingInt(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func ageRule(text, value string) (float64, string) {
	age, valid := parseLeadingInt(value)

	if ranges := extractAgeRanges(text); len(ranges) > 0 {
		if valid {
			for _, r := range ranges {
				if r.contains(age) {
					return CreditFull, fmt.Sprintf("age %g is within %s", age, r)
				}
			}
		}
		return CreditNone, fmt.Sprintf("age %s is outside the stated age limits", value)
	}

	if strings.Contains(text, "18") || strings.Contains(text, "above") {
		if valid && age >= adultAge {
			return CreditFull, "adult applicants are eligible"
		}
		return CreditNone, "scheme appears to require adult applicants"
	}

	return CreditUnstatedAge, "no age limit mentioned"
}

func stateRule(text, level, value string) (float64, string) {
	state := strings.ToLower(value)
	lvl := strings.ToLower(strings.TrimSpace(level))

	switch {
	case strings.Contains(text, state):
		return CreditFull, fmt.Sprintf("available in %s", value)
	case lvl == "central" || lvl == "pan india":
		return CreditFull, "central scheme available nationwide"
	case strings.Contains(text, "all states") || strings.Contains(text, "entire country"):
		return CreditFull, "open to all states"
	}
	return CreditNone, fmt.Sprintf("%s is not mentioned", value)
}

func incomeRule(text, value string) (float64, string) {
	mentioned, ceiling, ok := extractIncomeCeiling(text)
	if !mentioned {
		return CreditUnstatedIncome, "no income limit mentioned"
	}

	income, valid := parseLeadingInt(value)
	if ok && valid && income <= ceiling {
		return CreditFull, fmt.Sprintf("income within limit of %.0f", ceiling)
	}
	if ok {
		return CreditNone, fmt.Sprintf("income above limit of %.0f", ceiling)
	}
	return CreditNone, "no usable income limit found"
}

func categoryRule(text, value string) (float64, string) {
	category := strings.ToLower(value)

	if strings.Contains(text, category) || strings.Contains(text, "all categories") || strings.Contains(text, "general") {
		return CreditFull, fmt.Sprintf("open to %s applicants", value)
	}
	if !strings.Contains(text, "sc") && !strings.Contains(text, "st") && !strings.Contains(text, "obc") {
		return CreditUnstatedGroup, "no social category restriction mentioned"
	}
	return CreditNone, "restricted to other social categories"
}

func occupationRule(text, value string) (float64, string) {
	occupation := strings.ToLower(value)

	if strings.Contains(text, occupation) {
		return CreditFull, fmt.Sprintf("meant for %s applicants", value)
	}
	if strings.Contains(text, "all") || strings.Contains(text, "any") || strings.Contains(text, "citizen") {
		return CreditOpenToAll, "open to all citizens"
	}
	return CreditNone, fmt.Sprintf("%s is not mentioned", value)
}

func genderRule(text, value string) (float64, string) {
	gender := strings.ToLower(value)
	female := gender == "female"

	switch {
	case strings.Contains(text, gender):
		return CreditFull, fmt.Sprintf("open to %s applicants", value)
	case female && (strings.Contains(text, "women") || strings.Contains(text, "mahila")):
		return CreditFull, "scheme for women"
	case !strings.Contains(text, "women") && !strings.Contains(text, "female") && !strings.Contains(text, "male"):
		return CreditFull, "no gender restriction mentioned"
	}
	return CreditNone, "restricted to another gender"
}

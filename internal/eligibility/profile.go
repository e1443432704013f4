package eligibility

import "strings"

// Field names a profile attribute
type Field string

const (
	FieldAge        Field = "age"
	FieldState      Field = "state"
	FieldIncome     Field = "income"
	FieldCategory   Field = "category"
	FieldOccupation Field = "occupation"
	FieldGender     Field = "gender"
	FieldEducation  Field = "education"
)

// Profile holds the answers collected from the user.
// Every field is optional; a blank field is not evaluated.
type Profile struct {
	Age        string `json:"age,omitempty"`
	State      string `json:"state,omitempty"`
	Income     string `json:"income,omitempty"`
	Category   string `json:"category,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Education  string `json:"education,omitempty"`
}

// Get returns the trimmed value of a field. A whitespace-only answer
// comes back empty, so it counts as unanswered in scoring.
func (p Profile) Get(f Field) string {
	var v string
	switch f {
	case FieldAge:
		v = p.Age
	case FieldState:
		v = p.State
	case FieldIncome:
		v = p.Income
	case FieldCategory:
		v = p.Category
	case FieldOccupation:
		v = p.Occupation
	case FieldGender:
		v = p.Gender
	case FieldEducation:
		v = p.Education
	}
	return strings.TrimSpace(v)
}

// Set assigns a field by name
func (p *Profile) Set(f Field, value string) {
	switch f {
	case FieldAge:
		p.Age = value
	case FieldState:
		p.State = value
	case FieldIncome:
		p.Income = value
	case FieldCategory:
		p.Category = value
	case FieldOccupation:
		p.Occupation = value
	case FieldGender:
		p.Gender = value
	case FieldEducation:
		p.Education = value
	}
}

// Has reports whether a field carries a value
func (p Profile) Has(f Field) bool {
	return p.Get(f) != ""
}

// IsEmpty reports whether no field carries a value
func (p Profile) IsEmpty() bool {
	for _, f := range AllFields {
		if p.Has(f) {
			return false
		}
	}
	return true
}

// Reset clears every field
func (p *Profile) Reset() {
	*p = Profile{}
}

// Missing returns the required fields that are still blank, in order
func (p Profile) Missing(required ...Field) []Field {
	var missing []Field
	for _, f := range required {
		if !p.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// AllFields lists profile fields in questionnaire order
var AllFields = []Field{
	FieldAge,
	FieldState,
	FieldIncome,
	FieldCategory,
	FieldOccupation,
	FieldGender,
	FieldEducation,
}

// ParseField resolves a field name, ignoring case
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range AllFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

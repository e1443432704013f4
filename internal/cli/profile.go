package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
)

// profileFlags are the questionnaire answers given on the command line
type profileFlags struct {
	profile eligibility.Profile
}

func (f *profileFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.profile.Age, "age", "", "Your age in years")
	fl.StringVar(&f.profile.State, "state", "", "State or union territory you live in")
	fl.StringVar(&f.profile.Income, "income", "", "Annual family income in rupees")
	fl.StringVar(&f.profile.Category, "category", "", "Social category (General, OBC, SC, ST, EWS)")
	fl.StringVar(&f.profile.Occupation, "occupation", "", "Occupation (e.g. Farmer, Student)")
	fl.StringVar(&f.profile.Gender, "gender", "", "Gender (Male, Female, Other)")
	fl.StringVar(&f.profile.Education, "education", "", "Highest education level")
}

// Profile returns the answers with surrounding blanks removed
func (f *profileFlags) Profile() eligibility.Profile {
	var p eligibility.Profile
	for _, field := range eligibility.AllFields {
		p.Set(field, f.profile.Get(field))
	}
	return p
}

// filterFlags narrow results by text and scheme category
type filterFlags struct {
	search         string
	schemeCategory string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Only schemes whose name, details or benefits contain this text")
	cmd.Flags().StringVar(&f.schemeCategory, "scheme-category", "", "Only schemes in this category ('all' for any)")
}

func (f *filterFlags) Filters() eligibility.Filters {
	return eligibility.Filters{Search: f.search, Category: f.schemeCategory}
}

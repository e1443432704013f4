package questionnaire

// Option is a selectable answer with the value stored in the profile
type Option struct {
	Label string
	Value string
}

// States lists the regions offered by the questionnaire
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram",
	"Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Puducherry", "Jammu and Kashmir", "Delhi",
}

// Occupations lists the occupations offered by the questionnaire
var Occupations = []Option{
	{Label: "Student", Value: "Student"},
	{Label: "Fisherman", Value: "Fisherman"},
	{Label: "Farmer", Value: "Farmer"},
	{Label: "Construction Worker", Value: "Construction Worker"},
	{Label: "Small Business Owner", Value: "Businessman"},
	{Label: "Salaried Employee", Value: "Salaried"},
	{Label: "Unemployed", Value: "Unemployed"},
	{Label: "Self Employed", Value: "Self Employed"},
	{Label: "Daily Wage Worker", Value: "Daily Wage Worker"},
}

// Categories lists the social categories
var Categories = []Option{
	{Label: "General", Value: "General"},
	{Label: "OBC (Other Backward Class)", Value: "OBC"},
	{Label: "SC (Scheduled Caste)", Value: "SC"},
	{Label: "ST (Scheduled Tribe)", Value: "ST"},
	{Label: "EWS (Economically Weaker Section)", Value: "EWS"},
}

// Genders lists the gender options
var Genders = []Option{
	{Label: "Male", Value: "Male"},
	{Label: "Female", Value: "Female"},
	{Label: "Other", Value: "Other"},
}

// Values returns the stored values of opts
func Values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func stateOptions() []Option {
	opts := make([]Option, len(States))
	for i, s := range States {
		opts[i] = Option{Label: s, Value: s}
	}
	return opts
}

package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// profileProperties are the answers a caller may supply. Every one is optional.
var profileProperties = map[string]interface{}{
	"age":        stringProp("Age in years, e.g. \"34\""),
	"state":      stringProp("State or union territory of residence, e.g. \"Kerala\""),
	"income":     stringProp("Annual household income in rupees, e.g. \"150000\""),
	"category":   map[string]interface{}{"type": "string", "enum": []string{"General", "OBC", "SC", "ST", "EWS"}, "description": "Social category"},
	"occupation": stringProp("Occupation, e.g. \"Farmer\", \"Student\", \"Fisherman\""),
	"gender":     map[string]interface{}{"type": "string", "enum": []string{"Male", "Female", "Other"}, "description": "Gender"},
	"education":  stringProp("Highest education level (informational)"),
}

func checkEligibilityProperties() map[string]interface{} {
	props := make(map[string]interface{}, len(profileProperties)+4)
	for k, v := range profileProperties {
		props[k] = v
	}
	props["search"] = stringProp("Only keep schemes whose name, details or benefits contain this text")
	props["scheme_category"] = stringProp("Only keep schemes in this category. Use 'all' or omit for no filter.")
	props["eligible_limit"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum eligible schemes to return (default: 20)",
	}
	props["partial_limit"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum partial matches to return (default: 10)",
	}
	return props
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "check_eligibility",
		Description: "Score every government scheme against a citizen profile and return eligible (70%+) and partial (40-69%) matches, best first, with full counts.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": checkEligibilityProperties(),
		},
	},
	{
		Name:        "get_scheme",
		Description: "Get full details of a scheme: benefits, eligibility, application process and documents. With profile fields, also explains the match score.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": func() map[string]interface{} {
				props := map[string]interface{}{
					"identifier": stringProp("Scheme name or slug (case-insensitive)"),
				}
				for k, v := range profileProperties {
					props[k] = v
				}
				return props
			}(),
			"required": []string{"identifier"},
		},
	},
	{
		Name:        "list_categories",
		Description: "List scheme categories with the number of schemes in each.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
	{
		Name:        "list_saved",
		Description: "List schemes the user has saved for later.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
	{
		Name:        "toggle_saved",
		Description: "Save a scheme for later, or remove it if already saved.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": stringProp("Exact scheme name"),
			},
			"required": []string{"name"},
		},
	},
}

package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	uriSummary    = "sahayak://summary"
	uriCategories = "sahayak://categories"
	uriSaved      = "sahayak://saved"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         uriSummary,
		Name:        "Dataset Summary",
		Description: "Scheme dataset status with counts by level and top categories",
		MimeType:    "text/plain",
	},
	{
		URI:         uriCategories,
		Name:        "Scheme Categories",
		Description: "All scheme categories with scheme counts",
		MimeType:    "text/plain",
	},
	{
		URI:         uriSaved,
		Name:        "Saved Schemes",
		Description: "Schemes the user saved for later",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

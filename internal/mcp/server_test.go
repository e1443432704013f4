package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vijay-prabhu/scheme-sahayak/internal/config"
	"github.com/vijay-prabhu/scheme-sahayak/internal/database"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

var testSchemes = []scheme.Scheme{
	{
		Name:        "Kisan Samman Nidhi",
		Slug:        "pm-kisan",
		Eligibility: "Farmers aged 18 to 60 years across all states",
		Benefits:    "Rs 6000 per year",
		Level:       "Central",
		Category:    "Agriculture,Rural & Environment",
	},
	{
		Name:        "Mahila Shakti",
		Eligibility: "Women residents of Kerala",
		Level:       "State",
		Category:    "Women and Child",
	},
	{
		Name:        "Senior Citizen Pension",
		Eligibility: "Citizens aged 60 to 99 years",
		Level:       "Central",
		Category:    "Social welfare",
	},
}

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(scheme.NewCatalog(testSchemes), db, config.Default(), zaptest.NewLogger(t))
}

func call(t *testing.T, s *Server, method string, params interface{}) *jsonRPCResponse {
	t.Helper()

	req := map[string]interface{}{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		req["params"] = params
	}
	msg, err := json.Marshal(req)
	require.NoError(t, err)

	return s.handleMessage(context.Background(), string(msg))
}

func callTool(t *testing.T, s *Server, name string, args interface{}) (string, bool) {
	t.Helper()

	resp := call(t, s, "tools/call", map[string]interface{}{"name": name, "arguments": args})
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(callToolResult)
	require.True(t, ok, "unexpected result type %T", resp.Result)
	require.Len(t, result.Content, 1)
	return result.Content[0].Text, result.IsError
}

func TestHandleMessage_Protocol(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name     string
		msg      string
		wantNil  bool
		wantCode int
	}{
		{"parse error", "{not json", false, codeParseError},
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"nope"}`, false, codeMethodNotFound},
		{"notification", `{"jsonrpc":"2.0","method":"initialized"}`, true, 0},
		{"unknown tool", `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"nope"}}`, false, codeInvalidParams},
		{"unknown resource", `{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"sahayak://nope"}}`, false, codeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.handleMessage(context.Background(), tt.msg)
			if tt.wantNil {
				assert.Nil(t, resp)
				return
			}
			require.NotNil(t, resp)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleInitialize(t *testing.T) {
	s := setupTestServer(t)
	s.SetVersion("1.2.3")

	resp := call(t, s, "initialize", map[string]interface{}{})
	result, ok := resp.Result.(initializeResult)
	require.True(t, ok)
	assert.Equal(t, serverName, result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", result.ServerInfo.Version)
	assert.Equal(t, protocolVersion, result.ProtocolVersion)
}

func TestToolsAndResourcesList(t *testing.T) {
	s := setupTestServer(t)

	tools, ok := call(t, s, "tools/list", nil).Result.(toolsListResult)
	require.True(t, ok)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
		_, registered := s.handlers[tool.Name]
		assert.True(t, registered, "tool %s has no handler", tool.Name)
	}
	assert.ElementsMatch(t, []string{"check_eligibility", "get_scheme", "list_categories", "list_saved", "toggle_saved"}, names)

	resources, ok := call(t, s, "resources/list", nil).Result.(resourcesListResult)
	require.True(t, ok)
	assert.Len(t, resources.Resources, 3)
}

func TestCheckEligibility(t *testing.T) {
	s := setupTestServer(t)

	text, isErr := callTool(t, s, "check_eligibility", map[string]interface{}{
		"age":        "30",
		"occupation": "Farmer",
	})
	require.False(t, isErr, text)

	var result checkEligibilityResult
	require.NoError(t, json.Unmarshal([]byte(text), &result))

	assert.Equal(t, scheme.StateReady, result.LoadState)
	assert.Equal(t, 3, result.Counts.Total)
	require.NotEmpty(t, result.Eligible)
	assert.Equal(t, "Kisan Samman Nidhi", result.Eligible[0].Name)
	assert.Equal(t, 100, result.Eligible[0].Score)
}

func TestCheckEligibility_EmptyProfileIsNeutral(t *testing.T) {
	s := setupTestServer(t)

	text, isErr := callTool(t, s, "check_eligibility", map[string]interface{}{})
	require.False(t, isErr, text)

	var result checkEligibilityResult
	require.NoError(t, json.Unmarshal([]byte(text), &result))

	assert.Equal(t, 0, result.Counts.Eligible)
	assert.Equal(t, 3, result.Counts.Partial)
	for _, m := range result.Partial {
		assert.Equal(t, 50, m.Score)
	}
}

func TestCheckEligibility_FiltersAndLimits(t *testing.T) {
	s := setupTestServer(t)

	text, _ := callTool(t, s, "check_eligibility", map[string]interface{}{
		"scheme_category": "women",
	})
	var filtered checkEligibilityResult
	require.NoError(t, json.Unmarshal([]byte(text), &filtered))
	assert.Equal(t, 1, filtered.Counts.Total)
	assert.Equal(t, 3, filtered.DatasetSize)
	assert.Contains(t, filtered.Summary, "among 1 matching the filters, out of 3 checked")

	text, _ = callTool(t, s, "check_eligibility", map[string]interface{}{
		"partial_limit": 1,
	})
	var capped checkEligibilityResult
	require.NoError(t, json.Unmarshal([]byte(text), &capped))
	assert.Len(t, capped.Partial, 1)
	assert.Equal(t, 3, capped.Counts.Partial)
	assert.Contains(t, capped.Summary, "top 1 shown")
}

func TestGetScheme(t *testing.T) {
	s := setupTestServer(t)

	text, isErr := callTool(t, s, "get_scheme", map[string]interface{}{
		"identifier": "PM-KISAN",
		"age":        "70",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, `"scheme_name": "Kisan Samman Nidhi"`)
	assert.Contains(t, text, `"score": 0`)

	text, isErr = callTool(t, s, "get_scheme", map[string]interface{}{"identifier": "missing"})
	assert.True(t, isErr)
	assert.Contains(t, text, "scheme not found")

	_, isErr = callTool(t, s, "get_scheme", map[string]interface{}{})
	assert.True(t, isErr)
}

func TestToggleSaved(t *testing.T) {
	s := setupTestServer(t)

	text, isErr := callTool(t, s, "toggle_saved", map[string]interface{}{"name": "mahila shakti"})
	require.False(t, isErr, text)
	assert.Contains(t, text, `"name": "Mahila Shakti"`)
	assert.Contains(t, text, `"saved": true`)

	text, _ = callTool(t, s, "list_saved", nil)
	assert.Contains(t, text, "Mahila Shakti")

	text, _ = callTool(t, s, "check_eligibility", map[string]interface{}{"gender": "Female"})
	assert.Contains(t, text, `"saved": true`)

	text, _ = callTool(t, s, "toggle_saved", map[string]interface{}{"name": "Mahila Shakti"})
	assert.Contains(t, text, `"saved": false`)

	_, isErr = callTool(t, s, "toggle_saved", map[string]interface{}{"name": "Not A Scheme"})
	assert.True(t, isErr)
}

func TestReadResources(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		uri  string
		want string
	}{
		{uriSummary, "Total schemes: 3"},
		{uriCategories, "- Agriculture (1)"},
		{uriSaved, "No saved schemes yet"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			resp := call(t, s, "resources/read", map[string]interface{}{"uri": tt.uri})
			require.Nil(t, resp.Error)
			result, ok := resp.Result.(readResourceResult)
			require.True(t, ok)
			require.Len(t, result.Contents, 1)
			assert.Contains(t, result.Contents[0].Text, tt.want)
		})
	}
}

func TestServe(t *testing.T) {
	s := setupTestServer(t)

	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	}, "\n"))
	var out strings.Builder

	require.NoError(t, s.Serve(context.Background(), in, &out))

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], serverName)
	assert.Contains(t, lines[1], "check_eligibility")
}

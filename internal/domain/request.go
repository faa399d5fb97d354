package domain

// Role identifies who authored an input message.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
)

// ToolTypeWebSearch is the only tool the search request carries.
const ToolTypeWebSearch = "web_search"

// PromptMessage follows the role/content pair required by the responses API.
type PromptMessage struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// ToolFilters narrows a web search to a set of hostnames.
type ToolFilters struct {
	AllowedDomains []string `json:"allowed_domains"`
}

// ToolSpec describes a hosted tool made available to the model.
type ToolSpec struct {
	Type    string       `json:"type"`
	Filters *ToolFilters `json:"filters,omitempty"`
}

// WebSearchTool returns a web_search tool, restricted to domain when it is non-empty.
func WebSearchTool(domain string) ToolSpec {
	tool := ToolSpec{Type: ToolTypeWebSearch}
	if domain != "" {
		tool.Filters = &ToolFilters{AllowedDomains: []string{domain}}
	}
	return tool
}

// AllowedDomain returns the single domain filter, or "" for an unrestricted tool.
func (t ToolSpec) AllowedDomain() string {
	if t.Filters == nil || len(t.Filters.AllowedDomains) == 0 {
		return ""
	}
	return t.Filters.AllowedDomains[0]
}

// OutboundRequest is the JSON body posted to the responses endpoint.
type OutboundRequest struct {
	Model string          `json:"model"`
	Tools []ToolSpec      `json:"tools"`
	Input []PromptMessage `json:"input"`
}

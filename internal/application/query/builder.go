package query

import (
	"net/url"
	"strings"

	"github.com/doeshing/painpoint-go/internal/domain"
)

const (
	urlInstruction = "You are a business analyst researching companies. Search the provided url " +
		"and identify the main pain points the company and its customers face. " +
		"Format the answer in Markdown with headers and bullet points."
	nameInstruction = "You are a business analyst researching companies. Do a web search " +
		"and identify the main pain points the company and its customers face. " +
		"Format the answer in Markdown with headers and bullet points."
)

// BuildRequest turns a validated target into the outbound request body.
// It never fails: a URL that does not parse to a hostname is used verbatim as
// the search domain.
func BuildRequest(model string, target domain.SearchTarget) domain.OutboundRequest {
	if target.IsURL() {
		return domain.OutboundRequest{
			Model: model,
			Tools: []domain.ToolSpec{domain.WebSearchTool(searchDomain(target.Value))},
			Input: []domain.PromptMessage{
				{Role: domain.RoleDeveloper, Content: urlInstruction},
				{Role: domain.RoleUser, Content: "Find pain points for " + target.Value},
			},
		}
	}

	return domain.OutboundRequest{
		Model: model,
		Tools: []domain.ToolSpec{domain.WebSearchTool("")},
		Input: []domain.PromptMessage{
			{Role: domain.RoleDeveloper, Content: nameInstruction},
			{Role: domain.RoleUser, Content: "Find pain points for company: " + target.Value},
		},
	}
}

// searchDomain extracts the lowercased hostname of an absolute URL, or returns
// raw when there is none.
func searchDomain(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Hostname() == "" {
		return raw
	}
	return strings.ToLower(parsed.Hostname())
}

package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/painpoint-go/internal/domain"
)

const diagnosticPrefix = "Failed to parse the response from the API. Raw response:"

// Matcher recognizes one response shape. Match reports false when raw does not
// have the shape; it must not panic on arbitrary decoded JSON.
type Matcher struct {
	Shape domain.ResponseShape
	Match func(raw any) (domain.NormalizedResult, bool)
}

var matchers = []Matcher{
	{Shape: domain.ShapeOutput, Match: matchOutput},
	{Shape: domain.ShapeChoices, Match: matchChoices},
	{Shape: domain.ShapeOutputText, Match: matchOutputText},
}

// Matchers returns the response matchers in precedence order.
func Matchers() []Matcher {
	out := make([]Matcher, len(matchers))
	copy(out, matchers)
	return out
}

// Normalize extracts the displayable content from a decoded response body.
// The first matching shape wins; an unknown shape yields a diagnostic dump of
// the body instead of an error.
func Normalize(raw any) domain.NormalizedResult {
	for _, m := range matchers {
		if result, ok := m.Match(raw); ok {
			result.Shape = m.Shape
			return result
		}
	}
	return diagnostic(raw)
}

// matchOutput handles the responses API list of output items.
func matchOutput(raw any) (domain.NormalizedResult, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.NormalizedResult{}, false
	}
	items, ok := obj["output"].([]any)
	if !ok {
		return domain.NormalizedResult{}, false
	}

	var (
		result  domain.NormalizedResult
		content strings.Builder
	)
	for _, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		switch item["type"] {
		case "message":
			switch parts := item["content"].(type) {
			case []any:
				for _, p := range parts {
					part, ok := p.(map[string]any)
					if !ok || part["type"] != "output_text" {
						continue
					}
					if text, ok := part["text"].(string); ok {
						content.WriteString(text)
					}
				}
			case string:
				content.WriteString(parts)
			}
		case "reasoning":
			// last reasoning item wins
			result.Reasoning, result.HasReasoning = summaryText(item["summary"])
		}
	}
	result.Content = content.String()
	return result, true
}

// matchChoices handles chat-completions style bodies.
func matchChoices(raw any) (domain.NormalizedResult, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.NormalizedResult{}, false
	}
	choices, ok := obj["choices"].([]any)
	if !ok {
		return domain.NormalizedResult{}, false
	}
	for _, entry := range choices {
		choice, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		message, ok := choice["message"].(map[string]any)
		if !ok {
			continue
		}
		content, ok := message["content"]
		if !ok || content == nil {
			continue
		}
		return domain.NormalizedResult{Content: stringify(content)}, true
	}
	return domain.NormalizedResult{}, false
}

// matchOutputText handles the SDK convenience field.
func matchOutputText(raw any) (domain.NormalizedResult, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.NormalizedResult{}, false
	}
	text, ok := obj["output_text"].(string)
	if !ok {
		return domain.NormalizedResult{}, false
	}
	return domain.NormalizedResult{Content: text}, true
}

func diagnostic(raw any) domain.NormalizedResult {
	var dump string
	if pretty, err := json.MarshalIndent(raw, "", "  "); err == nil {
		dump = string(pretty)
	} else {
		dump = fmt.Sprintf("%v", raw)
	}
	return domain.NormalizedResult{
		Content: diagnosticPrefix + "\n\n```json\n" + dump + "\n```",
		Shape:   domain.ShapeDiagnostic,
	}
}

// summaryText flattens a reasoning summary. The API sends a list of
// {"type":"summary_text","text":...} parts; older payloads send a string.
func summaryText(summary any) (string, bool) {
	switch value := summary.(type) {
	case nil:
		return "", false
	case string:
		return value, value != ""
	case []any:
		var texts []string
		for _, p := range value {
			if part, ok := p.(map[string]any); ok {
				if text, ok := part["text"].(string); ok && text != "" {
					texts = append(texts, text)
				}
			}
		}
		joined := strings.Join(texts, "\n\n")
		return joined, joined != ""
	default:
		return stringify(value), true
	}
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/doeshing/painpoint-go/internal/domain"
)

// RenderResult prints a succeeded state as plain Markdown. Reasoning, when
// present and requested, precedes the content.
func RenderResult(out io.Writer, state domain.QueryState, showReasoning bool) {
	if state.Result == nil {
		return
	}
	if showReasoning && state.Result.HasReasoning {
		fmt.Fprintln(out, "## Reasoning")
		fmt.Fprintln(out)
		fmt.Fprintln(out, state.Result.Reasoning)
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, state.Result.Content)
}

// RenderJSON prints the state view as indented JSON.
func RenderJSON(out io.Writer, state domain.QueryState) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(state.View())
}

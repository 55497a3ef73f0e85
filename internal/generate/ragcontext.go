// Package generate builds prompts for each artifact type, invokes the
// text-generation client, and negotiates the shape of the response
// (free text, length-capped text, sentinel protocol, or schema JSON).
package generate

import (
	"fmt"
	"strings"

	"github.com/atharvakapadnis/JobCraftAI/internal/retrieval"
)

// RenderContext renders retrieved examples into a prompt block, closest
// first. Returns an empty string when there are no examples so nothing is
// injected into the prompt.
func RenderContext(intro string, examples []retrieval.Example) string {
	if len(examples) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(intro)
	sb.WriteString("\n\n")
	for i, example := range examples {
		sb.WriteString(fmt.Sprintf("Example %d: %s\n\n", i+1, example.Text))
	}
	return sb.String()
}

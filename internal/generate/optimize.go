package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/prompts"
	"github.com/atharvakapadnis/JobCraftAI/internal/schemas"
)

// Suggestion is a single resume improvement recommendation.
type Suggestion struct {
	Category string `json:"category,omitempty"`
	Content  string `json:"content"`
	Priority string `json:"priority,omitempty"`
}

// SkillMatch analyzes one job-description skill against the resume.
type SkillMatch struct {
	SkillName  string `json:"skill_name"`
	IsPresent  string `json:"is_present,omitempty"`
	Importance string `json:"importance,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Optimization is the schema-validated result of a resume-optimization call.
type Optimization struct {
	MatchScore   float64      `json:"match_score"`
	Suggestions  []Suggestion `json:"suggestions"`
	SkillMatches []SkillMatch `json:"skill_matches,omitempty"`
}

// BuildOptimizationPrompt assembles the prompt for a schema-validated
// optimization call. The JSON Schema is rendered into the system message.
func BuildOptimizationPrompt(resumeText, jobDescription, ragContext string) (system, user string) {
	persona := prompts.MustGet("generation.json", "optimization-system")
	structured := prompts.Format(prompts.MustGet("parsing.json", "structured-system"), map[string]string{
		"Schema": schemas.MustGet(schemas.ResumeOptimization),
	})
	system = persona + "\n\n" + structured

	var sb strings.Builder
	sb.WriteString(prompts.MustGet("generation.json", "optimization-instructions"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Resume:\n%s\n\n", resumeText))
	sb.WriteString(fmt.Sprintf("Job Description:\n%s\n\n", jobDescription))
	if ragContext != "" {
		sb.WriteString(ragContext)
	}
	return system, sb.String()
}

// ParseOptimizationResponse parses and validates the model's JSON output.
// A failed parse is recovered once by slicing the first '{' to the last
// '}'; if that also fails, or the document does not conform to the schema,
// the call fails with a *ResponseShapeError.
func ParseOptimizationResponse(output string) (*Optimization, error) {
	cleaned := llm.CleanJSONBlock(output)

	doc := []byte(cleaned)
	var opt Optimization
	if err := json.Unmarshal(doc, &opt); err != nil {
		doc = []byte(llm.ExtractJSONObject(cleaned))
		if err := json.Unmarshal(doc, &opt); err != nil {
			return nil, &ResponseShapeError{Message: "optimization response is not valid JSON", Cause: err}
		}
	}

	if err := schemas.ValidateBytes(schemas.ResumeOptimization, doc); err != nil {
		return nil, &ResponseShapeError{Message: "optimization response does not match schema", Cause: err}
	}
	return &opt, nil
}

// GenerateOptimization performs a resume-optimization call end to end.
func GenerateOptimization(ctx context.Context, client llm.Client, resumeText, jobDescription, ragContext string) (*Optimization, error) {
	system, user := BuildOptimizationPrompt(resumeText, jobDescription, ragContext)

	raw, err := client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}
	return ParseOptimizationResponse(raw)
}

// SuggestionsText renders an optimization's suggestions as plain text so
// the result can be fed back into the retrieval collection.
func (o *Optimization) SuggestionsText() string {
	var sb strings.Builder
	for _, s := range o.Suggestions {
		sb.WriteString("- ")
		if s.Category != "" {
			sb.WriteString(s.Category)
			sb.WriteString(": ")
		}
		sb.WriteString(s.Content)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

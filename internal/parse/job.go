package parse

import (
	"context"
	"encoding/json"

	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/prompts"
	"github.com/atharvakapadnis/JobCraftAI/internal/schemas"
)

// ParseJobDescription extracts structured data from a raw job description.
func ParseJobDescription(ctx context.Context, client llm.Client, jobDescription string) (*ParsedJob, error) {
	system := structuredSystem(schemas.ParsedJob)
	user := prompts.Format(prompts.MustGet("parsing.json", "parse-job"), map[string]string{
		"JobDescription": jobDescription,
	})

	doc, err := completeStructured(ctx, client, system, user, schemas.ParsedJob)
	if err != nil {
		return nil, err
	}

	var job ParsedJob
	if err := json.Unmarshal(doc, &job); err != nil {
		return nil, &ParseError{Message: "failed to decode parsed job description", Cause: err}
	}
	return &job, nil
}

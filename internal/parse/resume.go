// Package parse turns raw resume and job-description text into
// schema-validated structured documents using LLM extraction.
package parse

import (
	"context"
	"encoding/json"

	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/prompts"
	"github.com/atharvakapadnis/JobCraftAI/internal/schemas"
)

// ParseResume extracts structured data from raw resume text.
func ParseResume(ctx context.Context, client llm.Client, resumeText string) (*ParsedResume, error) {
	system := structuredSystem(schemas.ParsedResume)
	user := prompts.Format(prompts.MustGet("parsing.json", "parse-resume"), map[string]string{
		"ResumeText": resumeText,
	})

	doc, err := completeStructured(ctx, client, system, user, schemas.ParsedResume)
	if err != nil {
		return nil, err
	}

	var resume ParsedResume
	if err := json.Unmarshal(doc, &resume); err != nil {
		return nil, &ParseError{Message: "failed to decode parsed resume", Cause: err}
	}
	return &resume, nil
}

// structuredSystem renders the named schema into the structured-output
// system prompt.
func structuredSystem(schemaName string) string {
	return prompts.Format(prompts.MustGet("parsing.json", "structured-system"), map[string]string{
		"Schema": schemas.MustGet(schemaName),
	})
}

// completeStructured performs a JSON-mode call and returns the raw document
// once it passes schema validation. A failed unmarshal is recovered once by
// slicing the first '{' to the last '}'.
func completeStructured(ctx context.Context, client llm.Client, system, user, schemaName string) ([]byte, error) {
	raw, err := client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		Temperature: 0.1,
		JSONMode:    true,
		Tier:        llm.TierLite,
	})
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(raw)
	doc := []byte(cleaned)
	if !json.Valid(doc) {
		doc = []byte(llm.ExtractJSONObject(cleaned))
		if !json.Valid(doc) {
			return nil, &ParseError{Message: "model output is not valid JSON"}
		}
	}

	if err := schemas.ValidateBytes(schemaName, doc); err != nil {
		return nil, &ParseError{Message: "model output does not match schema", Cause: err}
	}
	return doc, nil
}

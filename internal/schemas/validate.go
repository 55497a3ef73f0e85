// Package schemas provides embedded JSON Schemas for structured LLM output
// and gojsonschema-based validation of responses against them.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.json
var schemaFiles embed.FS

// Known schema names (filenames without extension).
const (
	ResumeOptimization = "resume_optimization"
	ParsedResume       = "parsed_resume"
	ParsedJob          = "parsed_job"
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation against %s failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Get returns the raw schema document so it can be rendered into prompts.
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name + ".json")
	if err != nil {
		return "", fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return string(data), nil
}

// MustGet returns the raw schema document, panicking if it does not exist.
func MustGet(name string) string {
	s, err := Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateBytes validates a JSON document against a named embedded schema.
// Returns *ValidationError when the document does not conform.
func ValidateBytes(name string, doc []byte) error {
	schemaText, err := Get(name)
	if err != nil {
		return err
	}

	schemaLoader := gojsonschema.NewStringLoader(schemaText)
	docLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", name, err)
	}

	if !result.Valid() {
		ve := &ValidationError{Schema: name}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}

	return nil
}

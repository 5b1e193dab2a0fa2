// Package schemas provides JSON Schema validation for analysis reports
// before they are persisted.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-review/internal/types"
)

//go:embed analysis_result.schema.json
var analysisResultSchema []byte

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// ValidateAnalysisResult checks a result against the analysis-result schema.
// A result that fails here indicates a scoring bug, not bad user input.
func ValidateAnalysisResult(result *types.AnalysisResult) error {
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(analysisResultSchema)
	docLoader := gojsonschema.NewBytesLoader(doc)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	if res.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range res.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}

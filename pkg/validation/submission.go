// Package validation checks submitted data against the submission schema and
// reports every problem with its location.
package validation

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formview/pkg/formview"
	"github.com/goliatone/go-formview/pkg/serialize"
)

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures validation outcomes.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// ValidateSubmission checks data against formview.SubmissionSchema, collecting
// all issues instead of stopping at the first.
func ValidateSubmission(data serialize.Data) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}

	err := formview.SubmissionSchema().VisitJSON(map[string]any(data), openapi3.MultiErrors())
	if err == nil {
		return result
	}

	result.Valid = false
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			result.Issues = append(result.Issues, issueFromError(item))
		}
	} else {
		result.Issues = []SchemaIssue{issueFromError(err)}
	}
	return result
}

func issueFromError(err error) SchemaIssue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		issue := SchemaIssue{Message: schemaErr.Reason}
		if len(pointer) > 0 {
			issue.Path = "/" + strings.Join(pointer, "/")
			issue.Field = pointer[0]
		}
		if issue.Message == "" {
			issue.Message = schemaErr.Error()
		}
		return issue
	}
	return SchemaIssue{Message: strings.TrimSpace(err.Error())}
}

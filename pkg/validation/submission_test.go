package validation

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formview/pkg/serialize"
)

func TestValidateSubmission_Valid(t *testing.T) {
	result := ValidateSubmission(serialize.Data{
		"first_name":     "A",
		"last_name":      "B",
		"is_over_21":     true,
		"favorite_drink": "C",
	})
	if !result.Valid || len(result.Issues) != 0 {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

func TestValidateSubmission_CollectsIssues(t *testing.T) {
	result := ValidateSubmission(serialize.Data{
		"first_name": 42,
		"is_over_21": "yes",
	})
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(result.Issues) < 2 {
		t.Fatalf("expected several issues, got %+v", result.Issues)
	}

	fields := make(map[string]bool)
	for _, issue := range result.Issues {
		if issue.Message == "" {
			t.Fatalf("issue without message: %+v", issue)
		}
		fields[issue.Field] = true
	}
	for _, want := range []string{"first_name", "is_over_21"} {
		if !fields[want] {
			t.Fatalf("expected an issue for %s, got %+v", want, result.Issues)
		}
	}
}

func TestValidateSubmission_Cases(t *testing.T) {
	cases := []struct {
		name      string
		data      serialize.Data
		wantField string
	}{
		{
			name: "without favorite drink",
			data: serialize.Data{"first_name": "A", "last_name": "B", "is_over_21": false},
		},
		{
			name:      "missing required key",
			data:      serialize.Data{"first_name": "A", "is_over_21": false},
			wantField: "last_name",
		},
		{
			name:      "wrong type",
			data:      serialize.Data{"first_name": "A", "last_name": "B", "is_over_21": "yes"},
			wantField: "is_over_21",
		},
		{
			name:      "unknown key",
			data:      serialize.Data{"first_name": "A", "last_name": "B", "is_over_21": false, "extra": "x"},
			wantField: "extra",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ValidateSubmission(tc.data)
			if tc.wantField == "" {
				if !result.Valid {
					t.Fatalf("unexpected issues: %+v", result.Issues)
				}
				return
			}
			if result.Valid || len(result.Issues) == 0 {
				t.Fatalf("expected issues")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Field == tc.wantField || strings.Contains(issue.Message, tc.wantField) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected an issue naming %s, got %+v", tc.wantField, result.Issues)
			}
		})
	}
}

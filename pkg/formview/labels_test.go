package formview_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formview/pkg/formview"
)

func TestLoadLabels_SanitizesAndMerges(t *testing.T) {
	labels, err := formview.LoadLabels(filepath.Join("testdata", "labels.yaml"))
	if err != nil {
		t.Fatalf("load labels: %v", err)
	}

	want := formview.DefaultLabels()
	want.Heading = "Drink Survey"
	want.FirstName = "First name"
	want.LastName = "Last name"
	want.IsOver21 = "Over 21 & thirsty"

	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLabels_MissingFile(t *testing.T) {
	if _, err := formview.LoadLabels(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseLabels_InvalidYAML(t *testing.T) {
	if _, err := formview.ParseLabels([]byte("heading: [unterminated")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseLabels_StripsScripts(t *testing.T) {
	labels, err := formview.ParseLabels([]byte(`submit: "<script>alert(1)</script>Send"`))
	if err != nil {
		t.Fatalf("parse labels: %v", err)
	}
	if labels.Submit != "Send" {
		t.Fatalf("expected markup stripped, got %q", labels.Submit)
	}
}

func TestLabels_MergeKeepsDefaults(t *testing.T) {
	got := formview.DefaultLabels().Merge(formview.Labels{Cancel: " Back "})
	want := formview.DefaultLabels()
	want.Cancel = "Back"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

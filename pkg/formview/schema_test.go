package formview_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formview/pkg/formview"
	"github.com/goliatone/go-formview/pkg/serialize"
)

func TestSubmissionSchema_Required(t *testing.T) {
	schema := formview.SubmissionSchema()
	want := []string{"first_name", "last_name", "is_over_21"}
	if diff := cmp.Diff(want, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if _, ok := schema.Properties["favorite_drink"]; !ok {
		t.Fatalf("favorite_drink property missing")
	}
}

func TestDecode(t *testing.T) {
	drink := "C"
	got := formview.Decode(serialize.Data{
		"first_name":     "A",
		"last_name":      "B",
		"is_over_21":     true,
		"favorite_drink": drink,
	})
	want := formview.Submission{FirstName: "A", LastName: "B", IsOver21: true, FavoriteDrink: &drink}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}

	if formview.Decode(serialize.Data{"is_over_21": false}).FavoriteDrink != nil {
		t.Fatalf("absent favorite drink must decode to nil")
	}
}

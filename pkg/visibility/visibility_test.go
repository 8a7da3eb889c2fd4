package visibility_test

import (
	"testing"

	"github.com/goliatone/go-formview/pkg/visibility"
)

func TestTruthy(t *testing.T) {
	ctx := visibility.Context{
		Values: map[string]any{
			"is_over_21": true,
			"off":        false,
			"name":       "Ada",
			"blank":      "",
			"count":      0,
		},
		Extras: map[string]any{"beta": true},
	}

	cases := []struct {
		rule string
		want bool
	}{
		{"", true},
		{"is_over_21", true},
		{"!is_over_21", false},
		{"!!is_over_21", true},
		{"off", false},
		{"!off", true},
		{"name", true},
		{"blank", false},
		{"count", false},
		{"missing", false},
		{"!missing", true},
		{"extras.beta", true},
		{"extras.missing", false},
	}

	for _, tc := range cases {
		got, err := visibility.Truthy.Eval("favorite_drink", tc.rule, ctx)
		if err != nil {
			t.Fatalf("eval %q: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("eval %q: want %v, got %v", tc.rule, tc.want, got)
		}
	}
}

func TestTruthy_RejectsBareNegation(t *testing.T) {
	if _, err := visibility.Truthy.Eval("x", "!", visibility.Context{}); err == nil {
		t.Fatalf("expected error for rule without value")
	}
}

func TestEvaluatorFunc(t *testing.T) {
	var seen string
	eval := visibility.EvaluatorFunc(func(path, rule string, _ visibility.Context) (bool, error) {
		seen = path + "|" + rule
		return false, nil
	})
	ok, err := eval.Eval("a", "b", visibility.Context{})
	if err != nil || ok || seen != "a|b" {
		t.Fatalf("unexpected result ok=%v err=%v seen=%q", ok, err, seen)
	}
}

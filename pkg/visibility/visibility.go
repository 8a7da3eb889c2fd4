// Package visibility decides whether conditional fields are mounted.
package visibility

import (
	"fmt"
	"strings"
)

// Evaluator determines whether a field should be mounted based on a rule
// string and the current values of the form.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the current control
// values keyed by field name; Extras lets callers inject arbitrary context.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}

// Truthy is the default evaluator. A rule names a value (`is_over_21`, or
// `extras.flag` to read Extras) that must be truthy; a leading `!` negates it.
// An empty rule is always visible. Missing values are falsy.
var Truthy Evaluator = EvaluatorFunc(evalTruthy)

func evalTruthy(_ string, rule string, ctx Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	negate := false
	for strings.HasPrefix(trimmed, "!") {
		negate = !negate
		trimmed = strings.TrimSpace(trimmed[1:])
	}
	if trimmed == "" {
		return false, fmt.Errorf("visibility: rule %q names no value", rule)
	}

	source := ctx.Values
	key := trimmed
	if rest, ok := strings.CutPrefix(trimmed, "extras."); ok {
		source = ctx.Extras
		key = rest
	}

	value, ok := source[key]
	result := ok && truthy(value)
	if negate {
		return !result, nil
	}
	return result, nil
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "0", "off", "no":
			return false
		}
		return true
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

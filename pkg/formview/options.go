package formview

import (
	"log/slog"

	"github.com/goliatone/go-formview/pkg/visibility"
)

// Option configures a Form.
type Option func(*Form)

// WithLabels overrides the default labels. Empty fields keep their default.
func WithLabels(labels Labels) Option {
	return func(f *Form) {
		f.labels = f.labels.Merge(labels)
	}
}

// WithLogger sets the logger used for debug records on toggle, submit and
// cancel.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithVisibilityEvaluator replaces the evaluator deciding whether the favorite
// drink field is mounted. It receives the rule "is_over_21" and the current
// toggle state under Values["is_over_21"].
func WithVisibilityEvaluator(evaluator visibility.Evaluator) Option {
	return func(f *Form) {
		if evaluator != nil {
			f.evaluator = evaluator
		}
	}
}

package tui

import (
	"log/slog"

	"github.com/goliatone/go-formview/pkg/runtime"
)

// Theme captures optional formatting hints applied to prompt and info
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLogger sets the logger for the session and its host.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHostOptions forwards options to the runtime host the session mounts
// the component on.
func WithHostOptions(options ...runtime.HostOption) Option {
	return func(s *Session) {
		s.hostOptions = append(s.hostOptions, options...)
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// Package tui drives a mounted component from the terminal. A Session walks
// the rendered tree the way a user tabs through a page: each control is
// prompted once in document order, answers are dispatched as DOM events, and
// the tree is re-read after every answer so fields mounted by an earlier
// answer are prompted next.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formview/pkg/runtime"
	"github.com/goliatone/go-formview/pkg/vdom"
)

// Session prompts a single component through a PromptDriver.
type Session struct {
	component   runtime.Component
	driver      PromptDriver
	logger      *slog.Logger
	hostOptions []runtime.HostOption
	theme       Theme

	host *runtime.Host
}

// NewSession mounts nothing yet; Run mounts comp on a fresh host. The survey
// driver is used unless WithPromptDriver supplies another.
func NewSession(comp runtime.Component, options ...Option) (*Session, error) {
	if comp == nil {
		return nil, errors.New("tui: component is required")
	}
	s := &Session{
		component: comp,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s, nil
}

// Host returns the host the session mounted, or nil before Run.
func (s *Session) Host() *runtime.Host {
	return s.host
}

// Run mounts the component, prompts every control, then asks which button to
// press and clicks it. The component stays mounted when Run returns.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}

	hostOptions := append([]runtime.HostOption{runtime.WithLogger(s.logger)}, s.hostOptions...)
	s.host = runtime.NewHost(hostOptions...)
	s.host.Mount(s.component)

	if heading := vdom.Find(s.host.Tree(), isHeading); heading != nil {
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+strings.TrimSpace(heading.TextContent())); err != nil {
			return err
		}
	}

	visited := make(map[string]bool)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		node, key := nextControl(s.host.Tree(), visited)
		if node == nil {
			break
		}
		visited[key] = true
		if err := s.prompt(ctx, node); err != nil {
			return err
		}
	}

	return s.chooseAction(ctx)
}

func (s *Session) prompt(ctx context.Context, node *vdom.VNode) error {
	message := s.theme.PromptPrefix + controlLabel(s.host.Tree(), node)

	switch node.Attr("type") {
	case "checkbox":
		checked := node.BoolAttr("checked")
		answer, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: checked})
		if err != nil {
			return err
		}
		if answer == checked {
			return nil
		}
		s.logger.Debug("tui: toggle", "control", node.Attr("name"), "checked", answer)
		if err := s.host.Click(node); err != nil {
			return fmt.Errorf("tui: click %q: %w", node.Attr("name"), err)
		}
	default:
		answer, err := s.driver.Input(ctx, InputConfig{Message: message, Default: node.Attr("value")})
		if err != nil {
			return err
		}
		if err := s.host.Input(node, answer); err != nil {
			return fmt.Errorf("tui: input %q: %w", node.Attr("name"), err)
		}
	}
	return nil
}

func (s *Session) chooseAction(ctx context.Context) error {
	buttons := vdom.FindAll(s.host.Tree(), func(n *vdom.VNode) bool {
		return n.Tag == "button"
	})
	if len(buttons) == 0 {
		return ErrNoActions
	}

	options := make([]string, len(buttons))
	defaultIndex := len(buttons) - 1
	for i, button := range buttons {
		options[i] = strings.TrimSpace(button.TextContent())
		if t := button.Attr("type"); t == "" || t == "submit" {
			defaultIndex = i
		}
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      s.theme.PromptPrefix + "Action",
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(buttons) {
		return fmt.Errorf("tui: action index %d out of range", idx)
	}

	s.logger.Debug("tui: action", "button", options[idx])
	if err := s.host.Click(buttons[idx]); err != nil {
		return fmt.Errorf("tui: click %q: %w", options[idx], err)
	}
	return nil
}

// nextControl returns the first text or checkbox input not yet visited, keyed
// by name (or id when unnamed).
func nextControl(tree *vdom.VNode, visited map[string]bool) (*vdom.VNode, string) {
	var (
		found *vdom.VNode
		key   string
	)
	vdom.Walk(tree, func(n *vdom.VNode) bool {
		if n.Tag != "input" {
			return true
		}
		switch n.Attr("type") {
		case "text", "checkbox", "":
		default:
			return true
		}
		k := n.Attr("name")
		if k == "" {
			k = n.Attr("id")
		}
		if k == "" || visited[k] {
			return true
		}
		found, key = n, k
		return false
	})
	return found, key
}

// controlLabel returns the text of the label pointing at node, falling back
// to its name.
func controlLabel(tree, node *vdom.VNode) string {
	if id := node.Attr("id"); id != "" {
		label := vdom.Find(tree, func(n *vdom.VNode) bool {
			return n.Tag == "label" && n.Attr("for") == id
		})
		if label != nil {
			return strings.TrimSpace(label.TextContent())
		}
	}
	if label := vdom.Closest(tree, node, "label"); label != nil {
		return strings.TrimSpace(label.TextContent())
	}
	return node.Attr("name")
}

func isHeading(n *vdom.VNode) bool {
	switch n.Tag {
	case "h1", "h2", "h3":
		return true
	}
	return false
}

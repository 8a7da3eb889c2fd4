package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-formview/internal/logging"
	"github.com/goliatone/go-formview/pkg/formview"
	"github.com/goliatone/go-formview/pkg/render"
	renderhtml "github.com/goliatone/go-formview/pkg/renderers/html"
	"github.com/goliatone/go-formview/pkg/renderers/tui"
	"github.com/goliatone/go-formview/pkg/runtime"
	"github.com/goliatone/go-formview/pkg/serialize"
)

// errAborted reports an interrupted session; main exits with status 130.
var errAborted = errors.New("aborted")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	stop()

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errAborted):
		os.Exit(130)
	default:
		log.Fatal(err)
	}
}

// run parses args, then either prints the form as html or prompts for it
// through driver (the survey driver when nil) and writes the submission.
// A cancelled form writes nothing.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver tui.PromptDriver) error {
	flags := flag.NewFlagSet("formview-cli", flag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.String("format", "json", "submission output format (json, form, pretty)")
	labelsPath := flags.String("labels", "", "YAML file overriding the form labels")
	output := flags.String("output", "", "output file (stdout if empty)")
	renderer := flags.String("render", "", "print the form as html (page, fragment) instead of prompting")
	logLevel := flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	logger := logging.New(stderr, *logLevel, false)

	outFormat, err := serialize.ParseFormat(*format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	labels := formview.DefaultLabels()
	if *labelsPath != "" {
		labels, err = formview.LoadLabels(*labelsPath)
		if err != nil {
			return fmt.Errorf("load labels: %w", err)
		}
	}

	var (
		submitted serialize.Data
		cancelled bool
	)
	form, err := formview.New(formview.Props{
		OnSubmit: func(data serialize.Data) { submitted = data },
		OnCancel: func() { cancelled = true },
	}, formview.WithLabels(labels), formview.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create form: %w", err)
	}

	var payload []byte
	if *renderer != "" {
		payload, err = renderForm(ctx, form, *renderer)
		if err != nil {
			return fmt.Errorf("render form: %w", err)
		}
	} else {
		session, err := tui.NewSession(form, tui.WithLogger(logger), tui.WithPromptDriver(driver))
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		if err := session.Run(ctx); err != nil {
			if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
				fmt.Fprintln(stderr, "Aborted")
				return errAborted
			}
			return fmt.Errorf("form session: %w", err)
		}
		if cancelled || submitted == nil {
			fmt.Fprintln(stderr, "Cancelled")
			return nil
		}
		payload, err = serialize.Encode(submitted, outFormat)
		if err != nil {
			return fmt.Errorf("encode submission: %w", err)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(stdout, "Output written to %s\n", *output)
		return nil
	}
	_, err = fmt.Fprintln(stdout, string(payload))
	return err
}

// renderForm mounts form and renders its initial tree with the named html
// renderer.
func renderForm(ctx context.Context, form runtime.Component, name string) ([]byte, error) {
	page, err := renderhtml.NewPage()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(page)
	registry.MustRegister(renderhtml.NewFragment())

	renderer, err := registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, registry.List())
	}

	host := runtime.NewHost()
	return renderer.Render(ctx, host.Mount(form), render.RenderOptions{})
}

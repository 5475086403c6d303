package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dkoosis/qakit/pkg/pipeline"
)

// Lint runs the check variant of the lint sequence. The report
// directory is created first; the primary linter will not create it.
func Lint(ctx context.Context, r *pipeline.Runner, cfg Config) error {
	var errs []error
	if err := ensureReportDir(r, cfg); err != nil {
		errs = append(errs, err)
	}
	if _, err := r.Run(ctx, LintSteps(cfg, LintOptions{})...); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Fix runs the fix variant of the lint sequence.
func Fix(ctx context.Context, r *pipeline.Runner, cfg Config) error {
	_, err := r.Run(ctx, LintSteps(cfg, LintOptions{Fix: true})...)
	return err
}

// Review runs the test suite under coverage and exports every report
// format.
func Review(ctx context.Context, r *pipeline.Runner, cfg Config) error {
	var errs []error
	if err := ensureReportDir(r, cfg); err != nil {
		errs = append(errs, err)
	}
	if _, err := r.Run(ctx, ReviewSteps(cfg)...); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func ensureReportDir(r *pipeline.Runner, cfg Config) error {
	if r.DryRun {
		return nil
	}
	if err := os.MkdirAll(cfg.Abs(cfg.ReportDir), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	return nil
}

// Docs cleans the generated docs tree and dispatches the given tokens.
// When the rtd branch ran, the frozen requirements file is post-processed
// so hosted builds can install it. Like every sequence, later work is
// not gated on earlier failures; all failures come back joined.
func Docs(ctx context.Context, r *pipeline.Runner, cfg Config, tokens ...string) error {
	steps, dispatched := DocsSteps(cfg, tokens)

	var errs []error
	if !r.DryRun {
		if err := os.RemoveAll(cfg.Abs(cfg.Docs.Build)); err != nil {
			errs = append(errs, fmt.Errorf("clean docs build: %w", err))
		}
	}

	if _, err := r.Run(ctx, steps...); err != nil {
		errs = append(errs, err)
	}

	if !r.DryRun && slices.Contains(dispatched, "rtd") {
		if err := TruncateRequirements(cfg.Abs(cfg.Docs.RTDRequirements)); err != nil {
			errs = append(errs, fmt.Errorf("truncate requirements: %w", err))
		}
	}

	return errors.Join(errs...)
}

// TruncateRequirements strips editable installs and local file
// references from a frozen requirements file. Hosted documentation
// builds cannot resolve either.
func TruncateRequirements(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-e") {
			continue
		}
		if strings.Contains(trimmed, "@ file://") {
			continue
		}
		kept = append(kept, line)
	}

	return os.WriteFile(path, []byte(strings.Join(kept, "\n")), 0o644)
}

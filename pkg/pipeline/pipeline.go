// Package pipeline runs external tools in sequence the way a checked-in
// build script does: every step runs even when an earlier one fails, and
// the failures are reported together at the end.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Step is one external tool invocation.
type Step struct {
	Name string
	Tool string
	Args []string

	// Dir is the working directory. Empty inherits the process's.
	Dir string

	// Env entries are appended to the inherited environment.
	Env []string

	// StdoutPath redirects the tool's stdout into a file, creating
	// parent directories as needed. Empty writes to the runner's Stdout.
	StdoutPath string
}

// Result records one step's outcome.
type Result struct {
	Step     Step
	Err      error
	Duration time.Duration
}

// Failed reports whether the step exited with an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Runner executes steps sequentially.
type Runner struct {
	Log    *zap.Logger
	Stdout io.Writer
	Stderr io.Writer

	// DryRun logs each step without executing it.
	DryRun bool
}

// Run executes every step in order regardless of individual failures,
// returning one Result per executed step and the joined failures. A
// canceled context stops the sequence between steps; the context error
// is part of the returned error.
func (r *Runner) Run(ctx context.Context, steps ...Step) ([]Result, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	results := make([]Result, 0, len(steps))
	var errs []error

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if r.DryRun {
			log.Info("would run step",
				zap.String("step", s.Name),
				zap.String("tool", s.Tool),
				zap.Strings("args", s.Args))
			results = append(results, Result{Step: s})
			continue
		}

		log.Info("running step",
			zap.String("step", s.Name),
			zap.String("tool", s.Tool),
			zap.Strings("args", s.Args))

		start := time.Now()
		err := r.runStep(ctx, s)
		dur := time.Since(start)

		if err != nil {
			err = fmt.Errorf("%s failed: %w", s.Name, err)
			errs = append(errs, err)
			log.Warn("step failed",
				zap.String("step", s.Name),
				zap.Duration("took", dur),
				zap.Error(err))
		} else {
			log.Info("step done",
				zap.String("step", s.Name),
				zap.Duration("took", dur))
		}

		results = append(results, Result{Step: s, Err: err, Duration: dur})
	}

	return results, errors.Join(errs...)
}

func (r *Runner) runStep(ctx context.Context, s Step) error {
	cmd := exec.CommandContext(ctx, s.Tool, s.Args...) //nolint:gosec // steps are built from config
	cmd.Dir = s.Dir
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if s.StdoutPath != "" {
		if err := os.MkdirAll(filepath.Dir(s.StdoutPath), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		f, err := os.Create(s.StdoutPath) //nolint:gosec // path from config
		if err != nil {
			return fmt.Errorf("create %s: %w", s.StdoutPath, err)
		}
		cmd.Stdout = f

		runErr := cmd.Run()
		if closeErr := f.Close(); runErr == nil {
			runErr = closeErr
		}
		return runErr
	}

	return cmd.Run()
}

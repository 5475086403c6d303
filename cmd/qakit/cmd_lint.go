package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkoosis/qakit/pkg/ruffjson"
	"github.com/dkoosis/qakit/pkg/sarif"
	"github.com/dkoosis/qakit/pkg/tasks"
)

var lintFormat string

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Format and lint the sources",
	Long: `Runs the formatter, the primary linter with a JSON report into the
reports directory, and the secondary style linter. All three passes
always run; the exit code is non-zero when any of them failed.`,
	Args: cobra.NoArgs,
	RunE: runLint,
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Lint and apply automatic fixes",
	Long: `The same passes as lint, except the primary linter applies automatic
fixes and the JSON report lands in .ruff.json at the working tree root.`,
	Args: cobra.NoArgs,
	RunE: runFix,
}

func init() {
	lintCmd.Flags().StringVar(&lintFormat, "format", "json", "Primary report format (json or sarif)")
}

func runLint(cmd *cobra.Command, args []string) error {
	if lintFormat != "" && lintFormat != "json" && lintFormat != "sarif" {
		return fmt.Errorf("unknown format %q, want json or sarif", lintFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runErr := tasks.Lint(ctx, newRunner(), cfg)

	if lintFormat == "sarif" && !dryRun {
		diags, err := ruffjson.ParseFile(cfg.Abs(cfg.CheckReport()))
		if err == nil {
			err = writeSARIF(diags, "qakit/lint", cfg.Abs(cfg.SARIFReport()))
		}
		if err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	return runErr
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	return tasks.Fix(ctx, newRunner(), cfg)
}

// writeSARIF converts parsed ruff diagnostics into a SARIF log on disk.
func writeSARIF(diags []ruffjson.Diagnostic, automationID, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(outPath), err)
	}

	f, err := os.Create(outPath) //nolint:gosec // path from config
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}

	log := ruffjson.ToSARIF(diags, automationID)
	encErr := sarif.NewEncoder(f).Encode(log)
	if closeErr := f.Close(); encErr == nil {
		encErr = closeErr
	}
	if encErr != nil {
		return fmt.Errorf("write sarif: %w", encErr)
	}

	logger.Info("wrote sarif report",
		zap.String("path", outPath),
		zap.Int("results", len(diags)))
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dkoosis/qakit/pkg/pipeline"
	"github.com/dkoosis/qakit/pkg/pyproject"
	"github.com/dkoosis/qakit/pkg/tasks"
)

var (
	// Global flags
	configPath  string
	projectName string
	workDir     string
	verbose     bool
	dryRun      bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qakit",
	Short: "Quality automation for Python projects",
	Long: `qakit drives a Python project's quality pipeline: formatting and
linting (ruff, flake8), tests under coverage with every export format,
Sphinx documentation builds, and scored HTML reports from ruff's JSON
output.

Sequences never stop at a failing step. Every step runs, and the process
exit code reports whether any of them failed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", tasks.DefaultConfigName, "Path to the qakit config file")
	rootCmd.PersistentFlags().StringVar(&projectName, "project", "", "Project name (default: config, then PROJECT_NAME, then pyproject)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "chdir", "C", "", "Change to this directory first")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Print steps without running them")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(doctorCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for the working tree,
// honoring -C before anything touches the filesystem.
func loadConfig() (tasks.Config, error) {
	if workDir != "" {
		if err := os.Chdir(workDir); err != nil {
			return tasks.Config{}, fmt.Errorf("change directory: %w", err)
		}
	}

	var pp *pyproject.File
	if path, err := pyproject.Locate("."); err == nil {
		loaded, err := pyproject.Load(path)
		if err != nil {
			return tasks.Config{}, err
		}
		pp = loaded
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return tasks.Config{}, fmt.Errorf("resolve config path: %w", err)
	}

	return tasks.Load(abs, projectName, pp)
}

func newRunner() *pipeline.Runner {
	return &pipeline.Runner{
		Log:    logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		DryRun: dryRun,
	}
}

// signalContext cancels on SIGINT or SIGTERM so watch and serve loops
// shut down cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

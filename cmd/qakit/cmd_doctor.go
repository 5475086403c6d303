package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dkoosis/qakit/pkg/locate"
	"github.com/dkoosis/qakit/pkg/pyproject"
	"github.com/dkoosis/qakit/pkg/tasks"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment can run every sequence",
	Long: `Resolves each configured external tool on PATH with its version,
verifies the project manifest is readable and the report directory is
writable, and warns when the lint report is older than the sources.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var (
	doctorPass = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	doctorWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	doctorFail = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
)

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	problems := 0

	fmt.Fprintln(out, "tools:")
	for _, tool := range cfg.ToolNames() {
		path, err := exec.LookPath(tool)
		if err != nil {
			fmt.Fprintf(out, "  %-14s %s\n", tool, doctorFail.Render("MISSING"))
			problems++
			continue
		}
		fmt.Fprintf(out, "  %-14s ok  %s\n", tool, toolVersion(cmd.Context(), path))
	}

	if path, err := pyproject.Locate("."); err != nil {
		fmt.Fprintf(out, "pyproject:   %s\n", doctorWarn.Render("none found"))
	} else if _, err := pyproject.Load(path); err != nil {
		fmt.Fprintf(out, "pyproject:   %s (%v)\n", doctorFail.Render("UNREADABLE"), err)
		problems++
	} else {
		fmt.Fprintf(out, "pyproject:   ok (%s)\n", path)
	}

	reportDir := cfg.Abs(cfg.ReportDir)
	if err := writable(reportDir); err != nil {
		fmt.Fprintf(out, "reports:     %s (%v)\n", doctorFail.Render("NOT WRITABLE"), err)
		problems++
	} else {
		fmt.Fprintf(out, "reports:     writable (%s)\n", reportDir)
	}

	describeReport(out, cfg)

	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}
	fmt.Fprintln(out, doctorPass.Render("all checks passed"))
	return nil
}

// toolVersion asks a tool for its version, first line only.
func toolVersion(ctx context.Context, path string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "version unknown"
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}

// writable proves a directory accepts new files.
func writable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".qakit-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}

// describeReport warns when the lint report predates the newest source
// file, meaning its findings no longer reflect the tree.
func describeReport(w io.Writer, cfg tasks.Config) {
	reportPath := cfg.Abs(cfg.CheckReport())
	info, err := os.Stat(reportPath)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(w, "lint report: none yet, run qakit lint")
		return
	}
	if err != nil {
		fmt.Fprintf(w, "lint report: %v\n", err)
		return
	}

	newest, newestPath := newestSource(cfg)
	if newest.After(info.ModTime()) {
		fmt.Fprintf(w, "lint report: %s, %s is newer\n", doctorWarn.Render("STALE"), newestPath)
		return
	}
	fmt.Fprintf(w, "lint report: ok (%s)\n", reportPath)
}

// newestSource finds the most recently modified file under the
// configured source roots.
func newestSource(cfg tasks.Config) (time.Time, string) {
	var newest time.Time
	var newestPath string

	roots := make([]string, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		roots = append(roots, cfg.Abs(s))
	}

	files, err := locate.SourceFiles(roots...)
	if err != nil {
		return newest, ""
	}

	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
			newestPath = f
		}
	}
	return newest, newestPath
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkoosis/qakit/pkg/locate"
	"github.com/dkoosis/qakit/pkg/report"
	"github.com/dkoosis/qakit/pkg/ruffjson"
	"github.com/dkoosis/qakit/pkg/tasks"
)

var (
	reportInput string
	reportOut   string
	reportSARIF string
	reportServe string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render an HTML quality report from a ruff JSON report",
	Long: `Finds the newest ruff JSON report (or takes --input), scores it
against the measured source tree, and renders a browsable HTML site
plus a console summary. Optionally exports SARIF and serves the site.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "Ruff JSON report to render (default: discover)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output directory (default: <reports>/html)")
	reportCmd.Flags().StringVar(&reportSARIF, "sarif", "", "Also write a SARIF log to this path")
	reportCmd.Flags().StringVar(&reportServe, "serve", "", "Serve the rendered site on this address until interrupted")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input := reportInput
	if input == "" {
		input, err = discoverReport(cfg)
		if err != nil {
			return err
		}
	}

	diags, err := ruffjson.ParseFile(input)
	if err != nil {
		return err
	}
	idx := ruffjson.NewIndex(diags)

	lines, total := measureSources(cfg, idx)
	site := report.Build(cfg.Project, idx, lines, total)

	outDir := reportOut
	if outDir == "" {
		outDir = cfg.Abs(filepath.Join(cfg.ReportDir, "html"))
	}
	if err := report.Render(site, outDir); err != nil {
		return err
	}
	logger.Info("rendered report",
		zap.String("input", input),
		zap.String("dir", outDir),
		zap.Int("issues", site.Stats.Issues))

	report.Summary(os.Stdout, site)

	if reportSARIF != "" {
		if err := writeSARIF(diags, "qakit/report", cfg.Abs(reportSARIF)); err != nil {
			return err
		}
	}

	if reportServe != "" {
		ctx, cancel := signalContext()
		defer cancel()
		return report.Serve(ctx, logger, outDir, reportServe)
	}

	return nil
}

func discoverReport(cfg tasks.Config) (string, error) {
	reports, err := locate.FindReports(cfg.Root)
	if err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "", fmt.Errorf("no ruff reports under %s, run qakit lint first", cfg.Root)
	}
	if len(reports) > 1 {
		logger.Warn("multiple ruff reports found, using the first",
			zap.String("using", reports[0]),
			zap.Int("found", len(reports)))
	}
	return reports[0], nil
}

// measureSources counts the configured source tree for the aggregate
// score, and each reported file for its page. A file that cannot be
// read keeps zero lines, which floors its score.
func measureSources(cfg tasks.Config, idx *ruffjson.Index) (map[string]int, int) {
	var total int

	roots := make([]string, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		roots = append(roots, cfg.Abs(s))
	}

	files, err := locate.SourceFiles(roots...)
	if err != nil {
		logger.Warn("measuring sources", zap.Error(err))
	} else if total, err = locate.CountLines(files); err != nil {
		logger.Warn("counting lines", zap.Error(err))
	}

	lines := make(map[string]int)
	for _, name := range idx.Files() {
		n, err := locate.FileLines(cfg.Abs(name))
		if err != nil {
			logger.Warn("counting reported file", zap.String("file", name), zap.Error(err))
			continue
		}
		lines[name] = n
	}

	return lines, total
}

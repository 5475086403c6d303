package tasks

import (
	"path/filepath"
	"strings"

	"github.com/dkoosis/qakit/pkg/pipeline"
)

// LintOptions selects the lint variant. The check and fix variants
// differ only in whether the linter repairs what it can and where the
// report lands.
type LintOptions struct {
	Fix bool
}

// LintSteps builds the lint sequence: one formatter pass, then the
// primary linter writing a JSON report, then the secondary linter
// checking the convention codes the primary leaves out.
func LintSteps(cfg Config, opts LintOptions) []pipeline.Step {
	reportPath := cfg.CheckReport()
	if opts.Fix {
		reportPath = FixReport
	}

	check := []string{"check", "--exit-zero"}
	if opts.Fix {
		check = append(check, "--fix")
	}
	check = append(check, "--output-format=json", "--output-file="+reportPath)
	check = append(check, cfg.Sources...)

	return []pipeline.Step{
		{
			Name: "format",
			Tool: cfg.Tools.Ruff,
			Args: append([]string{"format"}, cfg.Sources...),
			Dir:  cfg.Root,
		},
		{
			Name: "lint",
			Tool: cfg.Tools.Ruff,
			Args: check,
			Dir:  cfg.Root,
		},
		{
			Name: "style",
			Tool: cfg.Tools.Flake8,
			Args: append([]string{"--select=" + strings.Join(cfg.Select, ",")}, cfg.Sources...),
			Dir:  cfg.Root,
		},
	}
}

// ReviewSteps builds the review sequence: the test suite under the
// coverage wrapper, then every export format, then the console summary.
// The exports run even when the suite fails so a red run still leaves
// inspectable artifacts.
func ReviewSteps(cfg Config) []pipeline.Step {
	cov := cfg.Tools.Coverage
	return []pipeline.Step{
		{
			Name: "tests",
			Tool: cov,
			Args: []string{"run", "-m", "pytest", cfg.Tests},
			Dir:  cfg.Root,
		},
		{
			Name: "coverage xml",
			Tool: cov,
			Args: []string{"xml", "-o", filepath.Join(cfg.ReportDir, "coverage.xml")},
			Dir:  cfg.Root,
		},
		{
			Name: "coverage json",
			Tool: cov,
			Args: []string{"json", "-o", filepath.Join(cfg.ReportDir, "coverage.json")},
			Dir:  cfg.Root,
		},
		{
			Name: "coverage lcov",
			Tool: cov,
			Args: []string{"lcov", "-o", filepath.Join(cfg.ReportDir, "coverage.lcov")},
			Dir:  cfg.Root,
		},
		{
			Name: "coverage html",
			Tool: cov,
			Args: []string{"html", "-d", filepath.Join(cfg.ReportDir, "htmlcov")},
			Dir:  cfg.Root,
		},
		{
			Name: "coverage report",
			Tool: cov,
			Args: []string{"report"},
			Dir:  cfg.Root,
		},
	}
}

// DocsSteps builds the docs sequence from the ordered argument tokens.
// "source" regenerates the API stubs, "html" builds the local site,
// "rtd" builds with the hosted theme and freezes dependencies. The
// first unrecognized token ends the dispatch without error; dispatched
// reports which tokens actually took effect.
func DocsSteps(cfg Config, tokens []string) (steps []pipeline.Step, dispatched []string) {
	for _, tok := range tokens {
		switch tok {
		case "source":
			// sphinx-apidoc takes a single module path; the first source
			// is the package itself.
			steps = append(steps, pipeline.Step{
				Name: "apidoc",
				Tool: cfg.Tools.SphinxAPIDoc,
				Args: []string{"-f", "-o", cfg.Docs.Source, cfg.Sources[0]},
				Dir:  cfg.Root,
			})
		case "html":
			steps = append(steps, pipeline.Step{
				Name: "html",
				Tool: cfg.Tools.SphinxBuild,
				Args: []string{"-b", "html", cfg.Docs.Source, filepath.Join(cfg.Docs.Build, "html")},
				Dir:  cfg.Root,
			})
		case "rtd":
			steps = append(steps,
				pipeline.Step{
					Name: "rtd html",
					Tool: cfg.Tools.SphinxBuild,
					Args: []string{
						"-b", "html",
						"-D", "html_theme=sphinx_rtd_theme",
						cfg.Docs.Source, filepath.Join(cfg.Docs.Build, "rtd"),
					},
					Dir: cfg.Root,
				},
				pipeline.Step{
					Name:       "freeze",
					Tool:       cfg.Tools.Pip,
					Args:       []string{"freeze"},
					Dir:        cfg.Root,
					StdoutPath: cfg.Abs(cfg.Docs.RTDRequirements),
				},
			)
		default:
			return steps, dispatched
		}
		dispatched = append(dispatched, tok)
	}
	return steps, dispatched
}

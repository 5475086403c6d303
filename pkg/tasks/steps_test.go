package tasks_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/qakit/pkg/pipeline"
	"github.com/dkoosis/qakit/pkg/tasks"
)

func stepConfig() tasks.Config {
	return tasks.Config{
		Project:   "demo",
		Sources:   []string{"demo", "tests"},
		Tests:     "tests",
		ReportDir: "reports",
		Select:    []string{"W503", "W504"},
		Docs: tasks.DocsConfig{
			Source:          "docs/source",
			Build:           "docs/build",
			RTDRequirements: "docs/requirements.txt",
		},
		Tools: tasks.ToolsConfig{
			Ruff:         "ruff",
			Flake8:       "flake8",
			Coverage:     "coverage",
			Pip:          "pip",
			SphinxBuild:  "sphinx-build",
			SphinxAPIDoc: "sphinx-apidoc",
		},
		Root: "/work/demo",
	}
}

func hasArg(s pipeline.Step, arg string) bool {
	for _, a := range s.Args {
		if a == arg {
			return true
		}
	}
	return false
}

func TestLintSteps_KeepOneFormatterTwoLinters_When_VariantChanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       tasks.LintOptions
		wantReport string
		wantFix    bool
	}{
		{
			name:       "check variant reports into the report dir",
			opts:       tasks.LintOptions{},
			wantReport: filepath.Join("reports", "ruff.json"),
		},
		{
			name:       "fix variant repairs and reports into the working tree",
			opts:       tasks.LintOptions{Fix: true},
			wantReport: tasks.FixReport,
			wantFix:    true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := stepConfig()
			steps := tasks.LintSteps(cfg, tc.opts)
			require.Len(t, steps, 3)

			format, lint, style := steps[0], steps[1], steps[2]

			assert.Equal(t, "ruff", format.Tool)
			assert.Equal(t, "format", format.Args[0])
			assert.Contains(t, format.Args, "demo")
			assert.Contains(t, format.Args, "tests")

			assert.Equal(t, "ruff", lint.Tool)
			assert.Equal(t, "check", lint.Args[0])
			assert.True(t, hasArg(lint, "--exit-zero"))
			assert.True(t, hasArg(lint, "--output-format=json"))
			assert.True(t, hasArg(lint, "--output-file="+tc.wantReport))
			assert.Equal(t, tc.wantFix, hasArg(lint, "--fix"))

			assert.Equal(t, "flake8", style.Tool)
			assert.Equal(t, "--select=W503,W504", style.Args[0])

			for _, s := range steps {
				assert.Equal(t, "/work/demo", s.Dir)
			}
		})
	}
}

func TestReviewSteps_RunSuiteOnceThenExportEverything(t *testing.T) {
	t.Parallel()

	cfg := stepConfig()
	steps := tasks.ReviewSteps(cfg)
	require.Len(t, steps, 6)

	suite := steps[0]
	assert.Equal(t, "coverage", suite.Tool)
	assert.Equal(t, []string{"run", "-m", "pytest", "tests"}, suite.Args)

	// One suite run, then the four artifact exports and the console summary.
	runs := 0
	for _, s := range steps {
		assert.Equal(t, "coverage", s.Tool)
		if s.Args[0] == "run" {
			runs++
		}
	}
	assert.Equal(t, 1, runs)

	wantArtifacts := map[string]string{
		"xml":  filepath.Join("reports", "coverage.xml"),
		"json": filepath.Join("reports", "coverage.json"),
		"lcov": filepath.Join("reports", "coverage.lcov"),
		"html": filepath.Join("reports", "htmlcov"),
	}
	for verb, path := range wantArtifacts {
		found := false
		for _, s := range steps {
			if s.Args[0] == verb {
				found = true
				assert.Contains(t, s.Args, path, "artifact path for %s", verb)
			}
		}
		assert.True(t, found, "missing export %q", verb)
	}

	assert.Equal(t, []string{"report"}, steps[5].Args)
}

func TestDocsSteps_DispatchTokensInOrder_When_GivenArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		tokens         []string
		wantSteps      []string
		wantDispatched []string
	}{
		{
			name:           "full rebuild runs every branch in order",
			tokens:         []string{"source", "html", "rtd"},
			wantSteps:      []string{"apidoc", "html", "rtd html", "freeze"},
			wantDispatched: []string{"source", "html", "rtd"},
		},
		{
			name:           "single token",
			tokens:         []string{"html"},
			wantSteps:      []string{"html"},
			wantDispatched: []string{"html"},
		},
		{
			name:           "unknown token stops the dispatch silently",
			tokens:         []string{"source", "publish", "html"},
			wantSteps:      []string{"apidoc"},
			wantDispatched: []string{"source"},
		},
		{
			name:   "no tokens builds nothing",
			tokens: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := stepConfig()
			steps, dispatched := tasks.DocsSteps(cfg, tc.tokens)

			var names []string
			for _, s := range steps {
				names = append(names, s.Name)
			}
			assert.Equal(t, tc.wantSteps, names)
			assert.Equal(t, tc.wantDispatched, dispatched)
		})
	}
}

func TestDocsSteps_RTDBranchFreezesDependencies(t *testing.T) {
	t.Parallel()

	cfg := stepConfig()
	steps, _ := tasks.DocsSteps(cfg, []string{"rtd"})
	require.Len(t, steps, 2)

	build := steps[0]
	assert.Equal(t, "sphinx-build", build.Tool)
	assert.True(t, hasArg(build, "html_theme=sphinx_rtd_theme"))
	assert.True(t, hasArg(build, filepath.Join("docs/build", "rtd")))

	freeze := steps[1]
	assert.Equal(t, "pip", freeze.Tool)
	assert.Equal(t, []string{"freeze"}, freeze.Args)
	assert.Equal(t, "/work/demo/docs/requirements.txt", freeze.StdoutPath)
	assert.True(t, strings.HasPrefix(freeze.StdoutPath, cfg.Root))
}

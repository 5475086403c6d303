// Package tasks builds and runs the quality sequences for a Python
// project: lint, fix, review, and docs. Each sequence is a fixed chain
// of external tools; a failing link never stops the chain.
package tasks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/qakit/pkg/pyproject"
)

// DefaultConfigName is the config file looked up in the project root.
const DefaultConfigName = "qakit.yml"

// FixReport is the working-tree report path the fix variant writes,
// distinct from the check variant's report directory.
const FixReport = ".ruff.json"

// Config drives the sequences. Paths are relative to Root unless
// absolute, and may reference ${PROJECT_NAME}.
type Config struct {
	Project   string   `yaml:"project"`
	Sources   []string `yaml:"sources"`
	Tests     string   `yaml:"tests"`
	ReportDir string   `yaml:"report_dir"`

	// Select carries the style convention codes the secondary linter
	// checks, the ones the primary deliberately leaves out.
	Select []string `yaml:"select"`

	Docs  DocsConfig  `yaml:"docs"`
	Tools ToolsConfig `yaml:"tools"`

	// Root is where sequences run from. Resolved at load, not configured.
	Root string `yaml:"-"`
}

// DocsConfig locates the documentation tree.
type DocsConfig struct {
	Source          string `yaml:"source"`
	Build           string `yaml:"build"`
	RTDRequirements string `yaml:"rtd_requirements"`
}

// ToolsConfig names the external executables. Override to pin absolute
// paths or wrappers.
type ToolsConfig struct {
	Ruff         string `yaml:"ruff"`
	Flake8       string `yaml:"flake8"`
	Coverage     string `yaml:"coverage"`
	Pip          string `yaml:"pip"`
	SphinxBuild  string `yaml:"sphinx_build"`
	SphinxAPIDoc string `yaml:"sphinx_apidoc"`
}

// Load builds the effective configuration. Precedence per field:
// qakit.yml, then [tool.qakit] in pyproject, then defaults. The project
// name additionally consults the PROJECT_NAME environment variable
// between the config file and pyproject; a non-empty project argument
// beats them all. The config file is optional; pp may be nil.
func Load(configPath, project string, pp *pyproject.File) (Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// optional file
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", configPath, err)
			}
		}
	}

	if pp != nil {
		overlayPyproject(&cfg, pp.Tool.Qakit)
	}

	if project != "" {
		cfg.Project = project
	}
	if cfg.Project == "" {
		cfg.Project = os.Getenv("PROJECT_NAME")
	}
	if cfg.Project == "" && pp != nil {
		cfg.Project = pp.Project.Name
	}
	if cfg.Project == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.Project = filepath.Base(wd)
		}
	}

	switch {
	case pp != nil:
		cfg.Root = pp.Root()
	case configPath != "":
		cfg.Root = filepath.Dir(configPath)
	default:
		cfg.Root, _ = os.Getwd()
	}

	cfg.applyDefaults()
	cfg.expandPaths()
	return cfg, nil
}

func overlayPyproject(cfg *Config, s pyproject.Settings) {
	if len(cfg.Sources) == 0 {
		cfg.Sources = s.Sources
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = s.ReportDir
	}
	if cfg.Docs.Source == "" {
		cfg.Docs.Source = s.DocsSource
	}
	if cfg.Docs.Build == "" {
		cfg.Docs.Build = s.DocsBuild
	}
	if cfg.Docs.RTDRequirements == "" {
		cfg.Docs.RTDRequirements = s.RTDRequirements
	}
}

func (c *Config) applyDefaults() {
	if len(c.Sources) == 0 {
		c.Sources = []string{"${PROJECT_NAME}"}
	}
	if c.Tests == "" {
		c.Tests = "tests"
	}
	if c.ReportDir == "" {
		c.ReportDir = "reports"
	}
	if len(c.Select) == 0 {
		c.Select = []string{"W503", "W504"}
	}
	if c.Docs.Source == "" {
		c.Docs.Source = "docs/source"
	}
	if c.Docs.Build == "" {
		c.Docs.Build = "docs/build"
	}
	if c.Docs.RTDRequirements == "" {
		c.Docs.RTDRequirements = "docs/requirements.txt"
	}
	if c.Tools.Ruff == "" {
		c.Tools.Ruff = "ruff"
	}
	if c.Tools.Flake8 == "" {
		c.Tools.Flake8 = "flake8"
	}
	if c.Tools.Coverage == "" {
		c.Tools.Coverage = "coverage"
	}
	if c.Tools.Pip == "" {
		c.Tools.Pip = "pip"
	}
	if c.Tools.SphinxBuild == "" {
		c.Tools.SphinxBuild = "sphinx-build"
	}
	if c.Tools.SphinxAPIDoc == "" {
		c.Tools.SphinxAPIDoc = "sphinx-apidoc"
	}
}

func (c *Config) expandPaths() {
	expand := func(s string) string {
		return os.Expand(s, func(key string) string {
			if key == "PROJECT_NAME" {
				return c.Project
			}
			return os.Getenv(key)
		})
	}

	for i := range c.Sources {
		c.Sources[i] = expand(c.Sources[i])
	}
	c.Tests = expand(c.Tests)
	c.ReportDir = expand(c.ReportDir)
	c.Docs.Source = expand(c.Docs.Source)
	c.Docs.Build = expand(c.Docs.Build)
	c.Docs.RTDRequirements = expand(c.Docs.RTDRequirements)
}

// CheckReport is where the check variant writes its JSON report,
// relative to Root.
func (c Config) CheckReport() string {
	return filepath.Join(c.ReportDir, "ruff.json")
}

// SARIFReport is where the SARIF export lands, relative to Root.
func (c Config) SARIFReport() string {
	return filepath.Join(c.ReportDir, "ruff.sarif")
}

// Abs resolves a config-relative path against Root.
func (c Config) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, rel)
}

// ToolNames lists the configured executables in a stable order, for
// environment checks.
func (c Config) ToolNames() []string {
	return []string{
		c.Tools.Ruff,
		c.Tools.Flake8,
		c.Tools.Coverage,
		c.Tools.Pip,
		c.Tools.SphinxBuild,
		c.Tools.SphinxAPIDoc,
	}
}

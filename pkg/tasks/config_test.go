package tasks

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dkoosis/qakit/pkg/pyproject"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROJECT_NAME", "")
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, DefaultConfigName), "", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if cfg.Project != filepath.Base(wd) {
		t.Errorf("project = %q, want cwd basename %q", cfg.Project, filepath.Base(wd))
	}
	if !reflect.DeepEqual(cfg.Sources, []string{cfg.Project}) {
		t.Errorf("sources = %v, want the project package", cfg.Sources)
	}
	if cfg.Tests != "tests" || cfg.ReportDir != "reports" {
		t.Errorf("layout defaults = %q / %q", cfg.Tests, cfg.ReportDir)
	}
	if !reflect.DeepEqual(cfg.Select, []string{"W503", "W504"}) {
		t.Errorf("select = %v", cfg.Select)
	}
	if cfg.Docs.Source != "docs/source" || cfg.Docs.Build != "docs/build" {
		t.Errorf("docs defaults = %+v", cfg.Docs)
	}
	if cfg.Tools.Ruff != "ruff" || cfg.Tools.SphinxBuild != "sphinx-build" {
		t.Errorf("tool defaults = %+v", cfg.Tools)
	}
	if cfg.Root != dir {
		t.Errorf("root = %q, want %q", cfg.Root, dir)
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("PROJECT_NAME", "from-env")
	dir := t.TempDir()

	configPath := filepath.Join(dir, DefaultConfigName)
	configYAML := "project: from-config\nreport_dir: build/reports\n"
	if err := os.WriteFile(configPath, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	pp := &pyproject.File{
		Path: filepath.Join(dir, pyproject.FileName),
	}
	pp.Project.Name = "from-pyproject"
	pp.Tool.Qakit = pyproject.Settings{
		Sources:   []string{"src/thing"},
		ReportDir: "pyproject-reports",
	}

	cfg, err := Load(configPath, "", pp)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Explicit config beats env and pyproject.
	if cfg.Project != "from-config" {
		t.Errorf("project = %q", cfg.Project)
	}
	if cfg.ReportDir != "build/reports" {
		t.Errorf("report dir = %q", cfg.ReportDir)
	}
	// Fields the config file left unset come from pyproject.
	if !reflect.DeepEqual(cfg.Sources, []string{"src/thing"}) {
		t.Errorf("sources = %v", cfg.Sources)
	}
	if cfg.Root != dir {
		t.Errorf("root = %q, want pyproject dir %q", cfg.Root, dir)
	}

	// An explicit override beats even the config file.
	cfg, err = Load(configPath, "from-flag", pp)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Project != "from-flag" {
		t.Errorf("project = %q, want override", cfg.Project)
	}
}

func TestLoadNameFallsBackToEnvThenPyproject(t *testing.T) {
	t.Setenv("PROJECT_NAME", "from-env")
	dir := t.TempDir()

	pp := &pyproject.File{Path: filepath.Join(dir, pyproject.FileName)}
	pp.Project.Name = "from-pyproject"

	cfg, err := Load(filepath.Join(dir, DefaultConfigName), "", pp)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Project != "from-env" {
		t.Errorf("project = %q, want env value", cfg.Project)
	}

	t.Setenv("PROJECT_NAME", "")
	cfg, err = Load(filepath.Join(dir, DefaultConfigName), "", pp)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Project != "from-pyproject" {
		t.Errorf("project = %q, want pyproject name", cfg.Project)
	}
}

func TestLoadExpandsProjectName(t *testing.T) {
	t.Setenv("PROJECT_NAME", "")
	dir := t.TempDir()

	configPath := filepath.Join(dir, DefaultConfigName)
	configYAML := `project: demo
sources: ["src/${PROJECT_NAME}", "tests"]
docs:
  source: "docs/${PROJECT_NAME}"
`
	if err := os.WriteFile(configPath, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(configPath, "", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{"src/demo", "tests"}
	if !reflect.DeepEqual(cfg.Sources, want) {
		t.Errorf("sources = %v, want %v", cfg.Sources, want)
	}
	if cfg.Docs.Source != "docs/demo" {
		t.Errorf("docs source = %q", cfg.Docs.Source)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, DefaultConfigName)
	if err := os.WriteFile(configPath, []byte("project: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(configPath, "", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := Config{ReportDir: "reports", Root: "/work/demo"}

	if got := cfg.CheckReport(); got != filepath.Join("reports", "ruff.json") {
		t.Errorf("check report = %q", got)
	}
	if got := cfg.SARIFReport(); got != filepath.Join("reports", "ruff.sarif") {
		t.Errorf("sarif report = %q", got)
	}
	if got := cfg.Abs("reports/ruff.json"); got != "/work/demo/reports/ruff.json" {
		t.Errorf("abs = %q", got)
	}
	if got := cfg.Abs("/already/abs"); got != "/already/abs" {
		t.Errorf("abs of absolute = %q", got)
	}
}

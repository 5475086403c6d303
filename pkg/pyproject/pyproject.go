// Package pyproject reads the PEP 621 metadata and the tool.qakit
// settings table from a Python project's pyproject.toml.
package pyproject

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the canonical project manifest name.
const FileName = "pyproject.toml"

// File is the subset of pyproject.toml this toolkit reads.
type File struct {
	Project Project `toml:"project"`
	Tool    Tool    `toml:"tool"`

	// Path is where the file was loaded from, set by Load.
	Path string `toml:"-"`
}

// Project is the [project] table of PEP 621.
type Project struct {
	Name                 string              `toml:"name"`
	Version              string              `toml:"version"`
	Description          string              `toml:"description"`
	RequiresPython       string              `toml:"requires-python"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
}

// Tool is the [tool] table. Only the qakit settings are decoded.
type Tool struct {
	Qakit Settings `toml:"qakit"`
}

// Settings is the [tool.qakit] table.
type Settings struct {
	Sources         []string `toml:"sources"`
	ReportDir       string   `toml:"report-dir"`
	DocsSource      string   `toml:"docs-source"`
	DocsBuild       string   `toml:"docs-build"`
	RTDRequirements string   `toml:"rtd-requirements"`
}

// Root returns the directory containing the manifest.
func (f *File) Root() string {
	return filepath.Dir(f.Path)
}

// Load reads and decodes a pyproject.toml.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	f.Path = path
	return &f, nil
}

// Locate walks up from dir looking for a pyproject.toml and returns its
// path. It stops at the filesystem root.
func Locate(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(abs, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no %s found above %s", FileName, dir)
		}
		abs = parent
	}
}

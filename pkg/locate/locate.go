// Package locate finds lint reports and Python sources on disk and
// measures how much code a report covers.
package locate

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// reportPattern matches the JSON reports the lint tasks write, whatever
// name variant produced them (ruff.json, .ruff.json, demo-ruff-2.json).
const reportPattern = "*ruff*.json"

// skipDirs are directory names never worth descending into.
var skipDirs = map[string]bool{
	"__pycache__":  true,
	"node_modules": true,
	"venv":         true,
	"env":          true,
	"htmlcov":      true,
}

// FindReports returns ruff JSON reports under dir, sorted by path. The
// top level is tried first; the tree is walked only when the top level
// has no match, so a report directory shadows stray copies deeper down.
func FindReports(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, reportPattern))
	if err != nil {
		return nil, fmt.Errorf("glob reports: %w", err)
	}
	if len(matches) > 0 {
		sort.Strings(matches)
		return matches, nil
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(reportPattern, d.Name()); ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sort.Strings(matches)
	return matches, nil
}

// SourceFiles collects the .py files under each root, sorted by path.
// Hidden directories, virtualenvs, and cache directories are skipped.
// A root that is itself a file is taken as-is.
func SourceFiles(roots ...string) ([]string, error) {
	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDir(d.Name()) && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), ".py") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// CountLines sums the line counts of the given files.
func CountLines(paths []string) (int, error) {
	total := 0
	for _, p := range paths {
		n, err := FileLines(p)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// FileLines counts the lines in one file.
func FileLines(path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // path from walkdir
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	count := 0
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}

func skipDir(name string) bool {
	if skipDirs[name] {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return strings.HasSuffix(name, ".egg-info")
}

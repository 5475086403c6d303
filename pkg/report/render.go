package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var siteTemplates = template.Must(template.New("site").Funcs(template.FuncMap{
	"timestamp": func(t time.Time) string {
		return t.Format(TimestampFormat)
	},
	"gradeClass": func(grade string) string {
		if grade == "" {
			return ""
		}
		return "grade-" + strings.ToLower(grade[:1])
	},
}).ParseFS(templateFS, "templates/*.html"))

// filePage is the data handed to the per-file template.
type filePage struct {
	Project   string
	Generated time.Time
	File      FilePage
}

// Render writes index.html and files/<slug>.html under outDir.
func Render(site Site, outDir string) error {
	if err := os.MkdirAll(filepath.Join(outDir, "files"), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := renderTo(filepath.Join(outDir, "index.html"), "index.html", site); err != nil {
		return err
	}

	for _, f := range site.Files {
		page := filePage{Project: site.Project, Generated: site.Generated, File: f}
		out := filepath.Join(outDir, "files", f.Slug+".html")
		if err := renderTo(out, "file.html", page); err != nil {
			return err
		}
	}

	return nil
}

func renderTo(path, name string, data any) error {
	f, err := os.Create(path) //nolint:gosec // path built from slugs
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	execErr := siteTemplates.ExecuteTemplate(f, name, data)
	if closeErr := f.Close(); execErr == nil {
		execErr = closeErr
	}
	if execErr != nil {
		return fmt.Errorf("render %s: %w", path, execErr)
	}
	return nil
}

// Package report turns parsed lint diagnostics into a browsable HTML
// site, a styled console summary, and a small server for the result.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkoosis/qakit/pkg/quality"
	"github.com/dkoosis/qakit/pkg/ruffjson"
)

// TimestampFormat is the render timestamp shown on every page.
const TimestampFormat = "15:04:05, 01-02-2006"

// Site is everything the renderer needs for one report.
type Site struct {
	Project   string
	Generated time.Time

	// Stats aggregates the whole report; Files carries one page per
	// offending file, sorted by path.
	Stats quality.Statistics
	Files []FilePage
}

// FilePage is one file's slice of the report.
type FilePage struct {
	Path   string
	Slug   string
	Stats  quality.Statistics
	Issues []ruffjson.Diagnostic
}

// Build assembles a Site from indexed diagnostics. lines maps each
// reported filename to its line count; totalLines covers the whole
// measured source tree so the aggregate score uses all code, not just
// the files with findings.
func Build(project string, idx *ruffjson.Index, lines map[string]int, totalLines int) Site {
	site := Site{
		Project:   project,
		Generated: time.Now(),
		Stats:     quality.Calculate(idx, totalLines),
	}

	seen := make(map[string]int)
	for _, path := range idx.Files() {
		issues := idx.File(path)
		slug := slugify(path)
		seen[slug]++
		if n := seen[slug]; n > 1 {
			slug = fmt.Sprintf("%s-%d", slug, n)
		}

		site.Files = append(site.Files, FilePage{
			Path:   path,
			Slug:   slug,
			Stats:  quality.Calculate(ruffjson.NewIndex(issues), lines[path]),
			Issues: issues,
		})
	}

	return site
}

// slugify flattens a file path into a name safe for a single output
// directory.
func slugify(path string) string {
	var b strings.Builder
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

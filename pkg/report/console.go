package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/qakit/pkg/ruffjson"
)

// Semantic colors, shared with the grade badges in the HTML output.
var (
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorInfo    = lipgloss.Color("#2196F3")
	colorMuted   = lipgloss.Color("#9e9e9e")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	severityStyles = map[ruffjson.Severity]lipgloss.Style{
		ruffjson.SeverityError:      lipgloss.NewStyle().Foreground(colorError).Bold(true),
		ruffjson.SeverityWarning:    lipgloss.NewStyle().Foreground(colorWarning),
		ruffjson.SeverityConvention: lipgloss.NewStyle().Foreground(colorWarning),
		ruffjson.SeverityInfo:       lipgloss.NewStyle().Foreground(colorInfo),
		ruffjson.SeverityFixed:      lipgloss.NewStyle().Foreground(colorSuccess),
	}
)

// gradeStyle picks the badge color by the grade's letter.
func gradeStyle(grade string) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if grade == "" {
		return style
	}
	switch grade[0] {
	case 'A', 'B':
		return style.Foreground(colorSuccess)
	case 'C':
		return style.Foreground(colorWarning)
	default:
		return style.Foreground(colorError)
	}
}

// Summary writes the console rendition of a report: grade, score, and
// the severity breakdown.
func Summary(w io.Writer, site Site) {
	stats := site.Stats

	fmt.Fprintf(w, "%s  %s  %.1f/100\n",
		titleStyle.Render(site.Project),
		gradeStyle(stats.Grade).Render(stats.Grade),
		stats.Score)

	if stats.Issues == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no issues found"))
		return
	}

	fmt.Fprintf(w, "%d issues in %d files (%d auto-fixable) over %d lines\n",
		stats.Issues, stats.Files, stats.Fixable, stats.Lines)

	counts := []struct {
		sev ruffjson.Severity
		n   int
	}{
		{ruffjson.SeverityError, stats.Error},
		{ruffjson.SeverityWarning, stats.Warning},
		{ruffjson.SeverityConvention, stats.Convention},
		{ruffjson.SeverityInfo, stats.Info},
		{ruffjson.SeverityFixed, stats.Fixed},
	}
	for _, c := range counts {
		if c.n == 0 {
			continue
		}
		label := fmt.Sprintf("%-10s %d", c.sev, c.n)
		if style, ok := severityStyles[c.sev]; ok {
			label = style.Render(label)
		}
		fmt.Fprintf(w, "  %s\n", label)
	}
}

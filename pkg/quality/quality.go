// Package quality turns a lint report into a weighted score and a
// letter grade, normalized per hundred lines of source.
package quality

import "github.com/dkoosis/qakit/pkg/ruffjson"

// Severity weights. An error costs sixteen times what an already-fixed
// issue costs.
const (
	weightFixed      = 1
	weightInfo       = 2
	weightConvention = 4
	weightWarning    = 8
	weightError      = 16
)

// Statistics summarizes one report against the code base it covers.
type Statistics struct {
	Lines   int `json:"lines"`
	Files   int `json:"files"`
	Issues  int `json:"issues"`
	Fixable int `json:"fixable"`

	Fixed      int `json:"fixed"`
	Info       int `json:"info"`
	Convention int `json:"convention"`
	Warning    int `json:"warning"`
	Error      int `json:"error"`

	MaxSeverity ruffjson.Severity `json:"max_severity"`
	Score       float64           `json:"score"`
	Grade       string            `json:"grade"`
}

// Calculate tallies the indexed diagnostics against lines of source and
// derives the score and grade. Unknown-severity diagnostics count toward
// Issues but carry no weight.
func Calculate(idx *ruffjson.Index, lines int) Statistics {
	stats := Statistics{
		Lines:       lines,
		Files:       idx.TotalFiles(),
		Issues:      idx.TotalIssues(),
		Fixable:     idx.TotalFixable(),
		Fixed:       idx.CountSeverity(ruffjson.SeverityFixed),
		Info:        idx.CountSeverity(ruffjson.SeverityInfo),
		Convention:  idx.CountSeverity(ruffjson.SeverityConvention),
		Warning:     idx.CountSeverity(ruffjson.SeverityWarning),
		Error:       idx.CountSeverity(ruffjson.SeverityError),
		MaxSeverity: idx.HighestSeverity(),
	}
	stats.Score = Score(stats)
	stats.Grade = Grade(stats.Score)
	return stats
}

// Score computes 100 minus the weighted issue cost per hundred lines,
// floored at zero. A report with no issues scores a flat 100 and a code
// base with no measured lines scores zero when any issue exists.
func Score(stats Statistics) float64 {
	if stats.Issues == 0 {
		return 100.0
	}
	if stats.Lines <= 0 {
		return 0.0
	}

	weighted := float64(weightError*stats.Error +
		weightWarning*stats.Warning +
		weightConvention*stats.Convention +
		weightInfo*stats.Info +
		weightFixed*stats.Fixed)

	score := 100.0 - weighted/(float64(stats.Lines)/100.0)
	if score < 0 {
		return 0.0
	}
	return score
}

// Grade maps a score onto the usual American letter scale.
func Grade(score float64) string {
	switch {
	case score >= 97:
		return "A+"
	case score >= 93:
		return "A"
	case score >= 90:
		return "A-"
	case score >= 87:
		return "B+"
	case score >= 83:
		return "B"
	case score >= 80:
		return "B-"
	case score >= 77:
		return "C+"
	case score >= 73:
		return "C"
	case score >= 70:
		return "C-"
	case score >= 67:
		return "D+"
	case score >= 63:
		return "D"
	case score >= 60:
		return "D-"
	default:
		return "F"
	}
}

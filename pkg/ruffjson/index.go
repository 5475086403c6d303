package ruffjson

import "sort"

// Index groups a report's diagnostics by file, ruleset, code, and
// severity so renderers can walk them without rescanning the slice.
// All listing methods return sorted keys for stable output.
type Index struct {
	diags      []Diagnostic
	byFile     map[string][]int
	byRuleset  map[string][]int
	byCode     map[string][]int
	bySeverity map[Severity][]int
}

// NewIndex builds an Index over diags. The slice is referenced, not
// copied.
func NewIndex(diags []Diagnostic) *Index {
	idx := &Index{
		diags:      diags,
		byFile:     make(map[string][]int),
		byRuleset:  make(map[string][]int),
		byCode:     make(map[string][]int),
		bySeverity: make(map[Severity][]int),
	}
	for i, d := range diags {
		idx.byFile[d.Filename] = append(idx.byFile[d.Filename], i)
		idx.byRuleset[d.Ruleset] = append(idx.byRuleset[d.Ruleset], i)
		idx.byCode[d.Code] = append(idx.byCode[d.Code], i)
		idx.bySeverity[d.Severity] = append(idx.bySeverity[d.Severity], i)
	}
	return idx
}

// All returns every diagnostic in report order.
func (idx *Index) All() []Diagnostic {
	return idx.diags
}

// Files lists the files with at least one diagnostic.
func (idx *Index) Files() []string {
	names := make([]string, 0, len(idx.byFile))
	for name := range idx.byFile {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File returns the diagnostics reported against one file, in report
// order.
func (idx *Index) File(name string) []Diagnostic {
	return idx.pick(idx.byFile[name])
}

// Rulesets lists the rule-group prefixes present in the report.
func (idx *Index) Rulesets() []string {
	sets := make([]string, 0, len(idx.byRuleset))
	for set := range idx.byRuleset {
		sets = append(sets, set)
	}
	sort.Strings(sets)
	return sets
}

// Ruleset returns the diagnostics belonging to one rule group.
func (idx *Index) Ruleset(name string) []Diagnostic {
	return idx.pick(idx.byRuleset[name])
}

// Codes lists the distinct rule codes present in the report.
func (idx *Index) Codes() []string {
	codes := make([]string, 0, len(idx.byCode))
	for code := range idx.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Code returns the diagnostics for one rule code.
func (idx *Index) Code(code string) []Diagnostic {
	return idx.pick(idx.byCode[code])
}

// Severity returns the diagnostics classified at exactly sev.
func (idx *Index) Severity(sev Severity) []Diagnostic {
	return idx.pick(idx.bySeverity[sev])
}

// CountSeverity reports how many diagnostics carry exactly sev.
func (idx *Index) CountSeverity(sev Severity) int {
	return len(idx.bySeverity[sev])
}

// TotalIssues is the number of diagnostics in the report.
func (idx *Index) TotalIssues() int {
	return len(idx.diags)
}

// TotalFiles is the number of files with at least one diagnostic.
func (idx *Index) TotalFiles() int {
	return len(idx.byFile)
}

// TotalFixable counts diagnostics that carry an automatic fix.
func (idx *Index) TotalFixable() int {
	n := 0
	for _, d := range idx.diags {
		if d.Fixable() {
			n++
		}
	}
	return n
}

// HighestSeverity returns the worst severity in the report, or
// SeverityNone when the report is clean.
func (idx *Index) HighestSeverity() Severity {
	highest := SeverityNone
	for _, d := range idx.diags {
		if d.Severity > highest {
			highest = d.Severity
		}
	}
	return highest
}

func (idx *Index) pick(positions []int) []Diagnostic {
	if len(positions) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(positions))
	for i, pos := range positions {
		out[i] = idx.diags[pos]
	}
	return out
}

// Package ruffjson parses ruff's JSON diagnostics output and classifies
// each diagnostic's severity by its rule group.
package ruffjson

import (
	"encoding/json"
	"fmt"
	"os"
)

// Position is a 1-based row/column pair within a source file.
type Position struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Edit is a single text replacement belonging to a suggested fix.
type Edit struct {
	Content     string   `json:"content"`
	Location    Position `json:"location"`
	EndLocation Position `json:"end_location"`
}

// Fix is ruff's suggested remediation for a diagnostic.
type Fix struct {
	Applicability string `json:"applicability"` // safe, unsafe, display
	Edits         []Edit `json:"edits"`
	Message       string `json:"message"`
}

// Diagnostic is one entry of ruff's --output-format=json report.
// Code is empty for syntax errors, which newer ruff emits with a null code.
type Diagnostic struct {
	Cell        *string  `json:"cell"`
	Code        string   `json:"code"`
	Filename    string   `json:"filename"`
	Location    Position `json:"location"`
	EndLocation Position `json:"end_location"`
	Fix         *Fix     `json:"fix"`
	Message     string   `json:"message"`
	NoqaRow     int      `json:"noqa_row"`
	URL         string   `json:"url"`

	// Derived on parse, not part of the wire format.
	Severity Severity `json:"-"`
	Ruleset  string   `json:"-"`
}

// Fixable reports whether ruff offered an automatic fix.
func (d Diagnostic) Fixable() bool {
	return d.Fix != nil
}

// Parse decodes a ruff JSON report and resolves each diagnostic's
// ruleset and severity.
func Parse(data []byte) ([]Diagnostic, error) {
	var diags []Diagnostic
	if err := json.Unmarshal(data, &diags); err != nil {
		return nil, fmt.Errorf("parse ruff report: %w", err)
	}

	for i := range diags {
		diags[i].Ruleset, diags[i].Severity = Classify(diags[i].Code)
	}

	return diags, nil
}

// ParseFile reads and decodes a ruff JSON report from disk.
func ParseFile(path string) ([]Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruff report: %w", err)
	}
	return Parse(data)
}

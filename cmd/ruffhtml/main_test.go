package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkoosis/qakit/pkg/ruffjson"
)

func TestRenderWritesFlatTable(t *testing.T) {
	report := `[
		{"code": "F401", "filename": "demo/app.py",
		 "location": {"column": 8, "row": 1},
		 "end_location": {"column": 11, "row": 1},
		 "fix": null, "message": "os imported but unused", "noqa_row": 1,
		 "url": "https://docs.astral.sh/ruff/rules/unused-import"},
		{"code": "E501", "filename": "demo/util.py",
		 "location": {"column": 89, "row": 12},
		 "end_location": {"column": 120, "row": 12},
		 "fix": null, "message": "Line too long (119 > 88)", "noqa_row": 12,
		 "url": "https://docs.astral.sh/ruff/rules/line-too-long"}
	]`

	diags, err := ruffjson.Parse([]byte(report))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	out := filepath.Join(t.TempDir(), "report.html")
	if err := render(diags, out); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	html := string(data)
	for _, want := range []string{
		"Ruff Lint Report",
		"<td>demo/app.py</td>",
		"<td>F401</td>",
		"<td>12</td>",
		"Line too long (119 &gt; 88)",
		`href="https://docs.astral.sh/ruff/rules/unused-import"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if got := strings.Count(html, "<tr>"); got != 3 {
		t.Errorf("row count = %d, want header plus two diagnostics", got)
	}
}

package ruffjson_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/qakit/pkg/ruffjson"
)

const sampleReport = `[
  {
    "cell": null,
    "code": "F401",
    "end_location": {"column": 10, "row": 1},
    "filename": "/work/demo/src/demo/__init__.py",
    "fix": {
      "applicability": "safe",
      "edits": [
        {"content": "", "end_location": {"column": 1, "row": 2}, "location": {"column": 1, "row": 1}}
      ],
      "message": "Remove unused import: os"
    },
    "location": {"column": 8, "row": 1},
    "message": "os imported but unused",
    "noqa_row": 1,
    "url": "https://docs.astral.sh/ruff/rules/unused-import"
  },
  {
    "cell": null,
    "code": "E501",
    "end_location": {"column": 120, "row": 14},
    "filename": "/work/demo/src/demo/cli.py",
    "fix": null,
    "location": {"column": 89, "row": 14},
    "message": "Line too long (119 > 88)",
    "noqa_row": 14,
    "url": "https://docs.astral.sh/ruff/rules/line-too-long"
  },
  {
    "cell": null,
    "code": "D103",
    "end_location": {"column": 12, "row": 7},
    "filename": "/work/demo/src/demo/cli.py",
    "fix": null,
    "location": {"column": 5, "row": 7},
    "message": "Missing docstring in public function",
    "noqa_row": 7,
    "url": "https://docs.astral.sh/ruff/rules/undocumented-public-function"
  },
  {
    "cell": null,
    "code": "PLR0913",
    "end_location": {"column": 9, "row": 31},
    "filename": "/work/demo/src/demo/cli.py",
    "fix": null,
    "location": {"column": 5, "row": 31},
    "message": "Too many arguments in function definition (7 > 5)",
    "noqa_row": 31,
    "url": "https://docs.astral.sh/ruff/rules/too-many-arguments"
  },
  {
    "cell": null,
    "code": null,
    "end_location": {"column": 2, "row": 3},
    "filename": "/work/demo/src/demo/broken.py",
    "fix": null,
    "location": {"column": 1, "row": 3},
    "message": "SyntaxError: Expected an indented block",
    "noqa_row": null,
    "url": null
  }
]`

func TestParse_ClassifiesDiagnostics_When_GivenRuffReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
		check     func(t *testing.T, diags []ruffjson.Diagnostic)
	}{
		{
			name:      "error: malformed JSON is rejected",
			input:     `{"not": "an array"}`,
			expectErr: true,
		},
		{
			name:  "ok: empty report yields no diagnostics",
			input: `[]`,
			check: func(t *testing.T, diags []ruffjson.Diagnostic) {
				assert.Empty(t, diags)
			},
		},
		{
			name:  "ok: diverse report classifies every entry",
			input: sampleReport,
			check: func(t *testing.T, diags []ruffjson.Diagnostic) {
				require.Len(t, diags, 5)

				assert.Equal(t, "F401", diags[0].Code)
				assert.Equal(t, "F", diags[0].Ruleset)
				assert.Equal(t, ruffjson.SeverityError, diags[0].Severity)
				assert.True(t, diags[0].Fixable())
				require.NotNil(t, diags[0].Fix)
				assert.Equal(t, "safe", diags[0].Fix.Applicability)
				require.Len(t, diags[0].Fix.Edits, 1)
				assert.Equal(t, 1, diags[0].Fix.Edits[0].Location.Row)

				assert.Equal(t, ruffjson.SeverityInfo, diags[2].Severity)
				assert.Equal(t, "D", diags[2].Ruleset)
				assert.False(t, diags[2].Fixable())

				assert.Equal(t, "PLR", diags[3].Ruleset)
				assert.Equal(t, ruffjson.SeverityConvention, diags[3].Severity)

				// Null code means ruff hit a syntax error.
				assert.Empty(t, diags[4].Code)
				assert.Equal(t, "syntax", diags[4].Ruleset)
				assert.Equal(t, ruffjson.SeverityError, diags[4].Severity)

				assert.Equal(t, 14, diags[1].Location.Row)
				assert.Equal(t, 89, diags[1].Location.Column)
				assert.Equal(t, 120, diags[1].EndLocation.Column)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			diags, err := ruffjson.Parse([]byte(tc.input))
			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, diags)
			}
		})
	}
}

func TestParseFile_ReadsReportFromDisk_When_PathExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ruff.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o644))

	diags, err := ruffjson.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, diags, 5)

	_, err = ruffjson.ParseFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestToSARIF_BuildsSingleRun_When_GivenDiagnostics(t *testing.T) {
	t.Parallel()

	diags, err := ruffjson.Parse([]byte(sampleReport))
	require.NoError(t, err)

	log := ruffjson.ToSARIF(diags, "qakit/lint")
	require.Len(t, log.Runs, 1)

	run := log.Runs[0]
	assert.Equal(t, "ruff", run.Tool.Driver.Name)
	require.NotNil(t, run.AutomationDetails)
	assert.Equal(t, "qakit/lint", run.AutomationDetails.ID)
	assert.NotEmpty(t, run.AutomationDetails.GUID)

	require.Len(t, run.Results, 5)
	assert.Equal(t, "F401", run.Results[0].RuleID)
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Equal(t, "note", run.Results[2].Level)
	assert.Equal(t, "syntax-error", run.Results[4].RuleID)

	// Rules are deduplicated, one descriptor per distinct code.
	assert.Len(t, run.Tool.Driver.Rules, 5)
	require.NotNil(t, run.Results[0].RuleIndex)
	assert.Equal(t, "F401", run.Tool.Driver.Rules[*run.Results[0].RuleIndex].ID)

	loc := run.Results[1].Locations[0].PhysicalLocation
	assert.Equal(t, "/work/demo/src/demo/cli.py", loc.ArtifactLocation.URI)
	require.NotNil(t, loc.Region)
	assert.Equal(t, 14, loc.Region.StartLine)
	assert.Equal(t, 120, loc.Region.EndColumn)
}

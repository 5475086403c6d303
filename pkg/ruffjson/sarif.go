package ruffjson

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dkoosis/qakit/pkg/sarif"
)

// ToSARIF converts parsed diagnostics into a single-run SARIF log.
// The driver is ruff itself since the findings are its diagnostics;
// automationID names the pipeline stage that produced the report.
func ToSARIF(diags []Diagnostic, automationID string) *sarif.Log {
	log := sarif.NewLog()
	run := sarif.Run{
		Tool: sarif.Tool{
			Driver: sarif.Driver{
				Name:           "ruff",
				InformationURI: "https://docs.astral.sh/ruff",
			},
		},
		AutomationDetails: &sarif.AutomationDetails{
			ID:   automationID,
			GUID: uuid.NewString(),
		},
		Results: []sarif.Result{},
	}

	for _, d := range diags {
		ruleID := d.Code
		if ruleID == "" {
			ruleID = "syntax-error"
		}

		ruleIndex := run.AddRule(sarif.ReportingDescriptor{
			ID:      ruleID,
			HelpURI: d.URL,
		})

		result := sarif.Result{
			RuleID:    ruleID,
			RuleIndex: &ruleIndex,
			Level:     d.Severity.Level(),
			Message:   sarif.Message{Text: d.Message},
			Locations: []sarif.Location{{
				PhysicalLocation: sarif.PhysicalLocation{
					ArtifactLocation: sarif.ArtifactLocation{
						// SARIF URIs use forward slashes regardless of platform.
						URI: filepath.ToSlash(d.Filename),
					},
					Region: &sarif.Region{
						StartLine:   d.Location.Row,
						StartColumn: d.Location.Column,
						EndLine:     d.EndLocation.Row,
						EndColumn:   d.EndLocation.Column,
					},
				},
			}},
		}
		run.Results = append(run.Results, result)
	}

	log.Runs = append(log.Runs, run)
	return log
}

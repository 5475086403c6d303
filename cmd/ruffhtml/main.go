// Command ruffhtml converts a ruff JSON report into a single HTML table.
package main

import (
	"flag"
	"fmt"
	"html/template"
	"os"

	"github.com/dkoosis/qakit/pkg/ruffjson"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Ruff Lint Report</title>
    <style>
        body { font-family: Arial, sans-serif; }
        table { width: 100%; border-collapse: collapse; }
        th, td { border: 1px solid #ddd; padding: 8px; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
    </style>
</head>
<body>
    <h1>Ruff Lint Report</h1>
    <table>
        <tr>
            <th>File</th>
            <th>Line</th>
            <th>Column</th>
            <th>Code</th>
            <th>Message</th>
            <th>URL</th>
        </tr>
{{range .}}        <tr>
            <td>{{.Filename}}</td>
            <td>{{.Location.Row}}</td>
            <td>{{.Location.Column}}</td>
            <td>{{.Code}}</td>
            <td>{{.Message}}</td>
            <td><a href="{{.URL}}">Link</a></td>
        </tr>
{{end}}    </table>
</body>
</html>
`))

func main() {
	in := flag.String("in", ".ruff.json", "ruff JSON report to convert")
	out := flag.String("out", "ruff-lint-report.html", "HTML file to write")
	flag.Parse()

	diags, err := ruffjson.ParseFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := render(diags, *out); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func render(diags []ruffjson.Diagnostic, path string) error {
	f, err := os.Create(path) //nolint:gosec // path from flag
	if err != nil {
		return err
	}

	execErr := pageTemplate.Execute(f, diags)
	if closeErr := f.Close(); execErr == nil {
		execErr = closeErr
	}
	return execErr
}

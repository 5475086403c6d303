package main

import (
	"github.com/spf13/cobra"

	"github.com/dkoosis/qakit/pkg/tasks"
)

var docsWatch bool

var docsCmd = &cobra.Command{
	Use:   "docs [source|html|rtd ...]",
	Short: "Build the Sphinx documentation",
	Long: `Cleans the generated docs tree, then dispatches the given tokens in
order: "source" regenerates the API stubs, "html" builds the local site,
"rtd" builds with the hosted theme and freezes dependencies into the
requirements file (editable installs and local paths stripped). The
first unrecognized token ends the dispatch without error.

With --watch, rebuilds the HTML site whenever the docs sources or the
package sources change, until interrupted.`,
	RunE: runDocs,
}

func init() {
	docsCmd.Flags().BoolVarP(&docsWatch, "watch", "w", false, "Rebuild on source changes until interrupted")
}

func runDocs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if docsWatch {
		return tasks.Watch(ctx, newRunner(), cfg)
	}

	return tasks.Docs(ctx, newRunner(), cfg, args...)
}

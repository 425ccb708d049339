// gitpub scans a directory tree for software projects and publishes each
// one as its own GitHub repository, stamping a standard README section
// along the way. Re-running is safe: existing repositories are adopted
// and updated in place.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.4.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gitpub",
	Short: "Publish local projects as individual GitHub repositories",
	Long: `gitpub discovers project directories on a drive or folder, classifies
them, and publishes each as its own GitHub repository.

The workflow is idempotent: repositories that already exist are adopted
and pushed to; README support sections are replaced, never duplicated;
and interrupted runs can simply be re-run.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose output on the console (the run log is always verbose)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/suhteevah/gitpub/internal/pipeline"
	"github.com/suhteevah/gitpub/internal/scanner"
)

var (
	scanTaggedOnly bool
	scanMaxDepth   int
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Discover and list projects without publishing anything",
	Long: `Scan a directory tree for projects and print what would be published.

No repositories are created and nothing is pushed; this is the read-only
half of 'gitpub upload'.

Examples:
  gitpub scan ~/src                 # List projects under ~/src
  gitpub scan --tagged-only         # Only tagged projects
  gitpub scan --max-depth 5 -v      # Deeper scan with per-project detail`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		root = pipeline.ResolveRoot(root)

		result, err := scanner.Scan(root, scanner.Options{
			MaxDepth:   scanMaxDepth,
			TaggedOnly: scanTaggedOnly,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(result.Projects) == 0 {
			fmt.Printf("No projects found under %q (max depth %d).\n", root, scanMaxDepth)
			return
		}

		printProjectTable(result.Projects)

		if verbose {
			cyan := color.New(color.FgCyan).SprintFunc()
			gray := color.New(color.FgHiBlack).SprintFunc()
			for _, p := range result.Projects {
				fmt.Printf("%s\n", cyan(p.Name))
				fmt.Printf("  Path: %s\n", p.Path)
				fmt.Printf("  Type: %s\n", p.Type)
				if p.Description != "" {
					fmt.Printf("  Description: %s\n", p.Description)
				}
				fmt.Printf("  Markers: %s\n", gray(fmt.Sprintf("%v", p.MarkersFound)))
				fmt.Println()
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Found %d project(s) (%d dirs scanned, %d skipped",
			green("✓"), len(result.Projects), result.Stats.DirsScanned, result.Stats.DirsSkipped)
		if result.Stats.ReadErrors > 0 {
			fmt.Printf(", %d unreadable", result.Stats.ReadErrors)
		}
		fmt.Println(")")
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanTaggedOnly, "tagged-only", "c", false, "Only list tagged projects")
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", 3, "Maximum directory depth to scan")
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/suhteevah/gitpub/internal/config"
	"github.com/suhteevah/gitpub/internal/githost"
	"github.com/suhteevah/gitpub/internal/pipeline"
	"github.com/suhteevah/gitpub/internal/publisher"
	"github.com/suhteevah/gitpub/internal/runlog"
	"github.com/suhteevah/gitpub/internal/types"
)

const logFile = "gitpub-run.log"

var (
	uploadTaggedOnly   bool
	uploadYes          bool
	uploadDryRun       bool
	uploadContact      string
	uploadMaxDepth     int
	uploadPrivate      bool
	uploadToken        string
	uploadBranch       string
	uploadParallel     int
	uploadSkipExisting bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [path]",
	Short: "Scan for projects and publish each as a GitHub repository",
	Long: `Scan a directory tree for projects and publish each one as its own
GitHub repository.

For every discovered project, gitpub:
1. Checks whether the repository already exists (existing repos are
   adopted and updated, never an error)
2. Creates it if absent, with the project's description
3. Stamps the README with the support section (idempotent)
4. Commits pending changes and pushes, retrying transient failures

Examples:
  gitpub upload ~/src                  # Scan and publish everything under ~/src
  gitpub upload --tagged-only          # Only tagged projects
  gitpub upload --dry-run              # Show what would happen
  gitpub upload -y --parallel 4        # Non-interactive, 4 publish workers
  gitpub upload --private -b master    # Private repos, push master`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.Load(config.DefaultConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		applyUploadFlags(cmd, &cfg)

		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		log, err := runlog.New(logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Close()

		printBanner()
		fmt.Printf("  Log file: %s\n\n", log.Path())

		// Authenticate before scanning so a bad credential fails fast.
		// Dry runs never touch the host.
		var host githost.Host
		if !uploadDryRun {
			g, err := githost.NewGitHub(ctx, githost.Config{Token: uploadToken})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				log.Printf("auth failed: %v", err)
				os.Exit(1)
			}
			host = g
			fmt.Printf("  Authenticated as: %s\n\n", color.CyanString(g.Username()))
		} else {
			fmt.Printf("  %s Dry run: skipping GitHub authentication\n\n", color.YellowString("⚠"))
		}

		pub := publisher.New(host, publisher.Config{
			Private:      cfg.Private,
			Branch:       cfg.Branch,
			Contact:      cfg.Contact,
			DryRun:       uploadDryRun,
			SkipExisting: uploadSkipExisting,
			Retry:        publisher.DefaultRetryConfig(),
		})

		pl := pipeline.New(pub, confirmProjects, os.Stdout, log)

		result, err := pl.Run(ctx, pipeline.Options{
			Root:       root,
			MaxDepth:   cfg.MaxDepth,
			TaggedOnly: cfg.TaggedOnly,
			Parallel:   cfg.Parallel,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure the path exists and is accessible.\n")
			os.Exit(1)
		}

		if result.Aborted {
			fmt.Println("Aborted.")
			return
		}
		if len(result.Projects) == 0 {
			fmt.Println("No projects found. Try:")
			fmt.Printf("  - Check that %q contains project folders\n", result.Root)
			fmt.Println("  - Increase --max-depth")
			fmt.Println("  - Remove --tagged-only to include all projects")
			return
		}

		printSummary(result)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolVarP(&uploadTaggedOnly, "tagged-only", "c", false, "Only publish tagged projects")
	uploadCmd.Flags().BoolVarP(&uploadYes, "yes", "y", false, "Auto-confirm all prompts (non-interactive)")
	uploadCmd.Flags().BoolVarP(&uploadDryRun, "dry-run", "d", false, "Show what would happen without making changes")
	uploadCmd.Flags().StringVar(&uploadContact, "contact", "", "Attribution contact for README support sections")
	uploadCmd.Flags().IntVar(&uploadMaxDepth, "max-depth", 0, "Maximum directory depth to scan (default 3)")
	uploadCmd.Flags().BoolVar(&uploadPrivate, "private", false, "Create private repositories instead of public")
	uploadCmd.Flags().StringVarP(&uploadToken, "token", "t", "", "GitHub token (or set GITPUB_TOKEN / GH_TOKEN / GITHUB_TOKEN)")
	uploadCmd.Flags().StringVarP(&uploadBranch, "branch", "b", "", "Branch to push to (default main)")
	uploadCmd.Flags().IntVar(&uploadParallel, "parallel", 0, "Publish worker count (default 1, sequential)")
	uploadCmd.Flags().BoolVar(&uploadSkipExisting, "skip-existing", false, "Skip projects whose repository already exists")
}

// applyUploadFlags overlays explicitly-set flags onto the file/default
// config. Unset flags leave the config value alone.
func applyUploadFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("contact") {
		cfg.Contact = uploadContact
	}
	if cmd.Flags().Changed("branch") {
		cfg.Branch = uploadBranch
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = uploadMaxDepth
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = uploadParallel
	}
	if uploadPrivate {
		cfg.Private = true
	}
	if uploadTaggedOnly {
		cfg.TaggedOnly = true
	}
}

// confirmProjects prints the discovery table and gates publishing. With
// --yes or --dry-run it never prompts.
func confirmProjects(projects []types.Project) (bool, error) {
	printProjectTable(projects)

	if uploadYes || uploadDryRun {
		return true, nil
	}

	fmt.Printf("This will create %d GitHub repo(s) and push code.\n", len(projects))
	fmt.Print("Continue? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

func printBanner() {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  gitpub")
	fmt.Println("  Scan, create repos, stamp READMEs, and push to GitHub")
	fmt.Println(strings.Repeat("=", 60))
}

func printProjectTable(projects []types.Project) {
	fmt.Printf("\n%-4s %-30s %-20s %-8s %-5s\n", "#", "Name", "Type", "Tagged", "Git")
	fmt.Println(strings.Repeat("-", 70))
	for i, p := range projects {
		fmt.Printf("%-4d %-30s %-20s %-8s %-5s\n",
			i+1, clip(p.Name, 28), clip(string(p.Type), 18), yesNo(p.Tagged), yesNo(p.HasGit))
	}
	fmt.Println()
}

func printSummary(result *pipeline.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  Summary")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("  Successful: %d\n", len(result.Tally.Succeeded))
	for _, out := range result.Outcomes {
		if out.Status != publisher.StatusSucceeded {
			continue
		}
		if out.URL != "" {
			fmt.Printf("    %s %s\n", green("✓"), out.URL)
		} else {
			fmt.Printf("    %s %s\n", green("✓"), out.RepoName)
		}
	}

	if len(result.Tally.Skipped) > 0 {
		fmt.Printf("  Skipped: %d\n", len(result.Tally.Skipped))
		for _, out := range result.Outcomes {
			if out.Status == publisher.StatusSkipped {
				fmt.Printf("    %s %s (%s)\n", yellow("-"), out.RepoName, gray(out.Reason))
			}
		}
	}

	if len(result.Tally.Failed) > 0 {
		fmt.Printf("  Failed: %d\n", len(result.Tally.Failed))
		for _, out := range result.Outcomes {
			if out.Status == publisher.StatusFailed {
				fmt.Printf("    %s %s: %s\n", red("✗"), out.RepoName, out.Reason)
			}
		}
		fmt.Printf("\n  Some uploads failed. Check the log for details: %s\n", logFile)
	} else {
		fmt.Printf("\n  Full log saved to: %s\n", logFile)
	}
	fmt.Println()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

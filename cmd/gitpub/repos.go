package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/suhteevah/gitpub/internal/githost"
)

var reposToken string

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List the authenticated user's repositories",
	Long: `List every repository of the authenticated GitHub user.

Useful for checking what a previous run created. Pagination is handled
automatically.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		host, err := githost.NewGitHub(ctx, githost.Config{Token: reposToken})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		repos, err := host.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("%s has %d repositories:\n\n", cyan(host.Username()), len(repos))
		for _, r := range repos {
			line := fmt.Sprintf("  %s", r.Name)
			if r.Private {
				line += gray(" (private)")
			}
			if r.Description != "" {
				line += fmt.Sprintf(": %s", r.Description)
			}
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(reposCmd)
	reposCmd.Flags().StringVarP(&reposToken, "token", "t", "", "GitHub token (or set GITPUB_TOKEN / GH_TOKEN / GITHUB_TOKEN)")
}

// Package publisher runs the per-project publish workflow: sanitize the
// name, check the remote, create or adopt the repository, stamp the
// README, and push with retry. Every step is idempotent with respect to
// repeated invocation on the same project, so a run interrupted halfway
// can simply be re-run.
package publisher

import (
	"context"
	"fmt"

	"github.com/suhteevah/gitpub/internal/githost"
	"github.com/suhteevah/gitpub/internal/names"
	"github.com/suhteevah/gitpub/internal/readme"
	"github.com/suhteevah/gitpub/internal/types"
	"github.com/suhteevah/gitpub/internal/vcs"
)

// descriptionLimit caps the description sent to the host.
const descriptionLimit = 200

// commitMessage is used when the working tree has pending changes.
const commitMessage = "Initial commit - published with gitpub"

// Status is the coarse outcome category for one project.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one project. Outcomes are created
// fresh per run and never persisted.
type Outcome struct {
	Project  types.Project
	RepoName string // sanitized remote name
	URL      string // remote HTML URL when known
	Status   Status
	Reason   string // short human-readable cause for skips and failures
	Attempts int    // push attempts made (0 when the push step was not reached)
	Created  bool   // whether the remote repository was newly created
}

// Config carries the publish settings shared by all projects in a run.
type Config struct {
	Private      bool   // create private repositories
	Branch       string // target branch to push
	Contact      string // attribution contact stamped into READMEs
	DryRun       bool   // report success without side effects
	SkipExisting bool   // skip projects whose repository already exists
	Retry        RetryConfig
}

// Publisher publishes projects one at a time. Projects share no mutable
// state: outcomes are independent and order-insensitive.
type Publisher struct {
	host   githost.Host
	cfg    Config
	newVCS func(dir string) vcs.VCS
}

// New creates a publisher. host may be nil only for dry runs, which never
// touch it.
func New(host githost.Host, cfg Config) *Publisher {
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryConfig()
	}
	return &Publisher{
		host:   host,
		cfg:    cfg,
		newVCS: func(dir string) vcs.VCS { return vcs.NewGit(dir) },
	}
}

// Publish runs the workflow for one project. Failures are recorded in the
// outcome, never propagated: one bad project must not prevent others from
// being processed.
func (p *Publisher) Publish(ctx context.Context, project types.Project) Outcome {
	out := Outcome{
		Project:  project,
		RepoName: names.Sanitize(project.Name),
	}

	if p.cfg.DryRun {
		out.Status = StatusSucceeded
		out.Reason = "dry run"
		return out
	}

	exists, err := p.host.Exists(ctx, out.RepoName)
	if err != nil {
		return fail(out, fmt.Errorf("checking repository: %w", err))
	}

	if exists && p.cfg.SkipExisting {
		out.Status = StatusSkipped
		out.Reason = "repository already exists"
		out.URL = p.htmlURL(out.RepoName)
		return out
	}

	cloneURL := p.cloneURL(out.RepoName)
	if exists {
		// Adopt: push updates into the existing repository, refreshing
		// its description when we have one.
		out.URL = p.htmlURL(out.RepoName)
		if desc := truncate(project.Description, descriptionLimit); desc != "" {
			if err := p.host.Update(ctx, out.RepoName, githost.UpdateFields{Description: &desc}); err != nil {
				return fail(out, fmt.Errorf("updating repository: %w", err))
			}
		}
	} else {
		repo, err := p.host.Create(ctx, out.RepoName, truncate(project.Description, descriptionLimit), p.cfg.Private)
		if err != nil {
			return fail(out, fmt.Errorf("creating repository: %w", err))
		}
		out.Created = true
		out.URL = repo.HTMLURL
		if repo.CloneURL != "" {
			cloneURL = repo.CloneURL
		}
	}

	if _, err := readme.Ensure(project.Path, readme.Options{
		Name:        out.RepoName,
		Type:        project.Type,
		Description: project.Description,
		Contact:     p.cfg.Contact,
		CloneURL:    cloneURL,
	}); err != nil {
		return fail(out, fmt.Errorf("updating README: %w", err))
	}

	attempts, err := p.syncAndPush(ctx, project.Path, cloneURL)
	out.Attempts = attempts
	if err != nil {
		return fail(out, err)
	}

	out.Status = StatusSucceeded
	return out
}

// syncAndPush brings the project's local repository to the target branch
// with everything committed, points origin at the remote, and pushes with
// retry.
func (p *Publisher) syncAndPush(ctx context.Context, dir, remoteURL string) (int, error) {
	v := p.newVCS(dir)

	if !v.IsRepo() {
		if err := v.Init(ctx, p.cfg.Branch); err != nil {
			return 0, err
		}
	} else if current := v.CurrentBranch(ctx); current != "" && current != p.cfg.Branch {
		if err := v.SwitchBranch(ctx, p.cfg.Branch); err != nil {
			return 0, err
		}
	}

	if err := v.EnsureIgnoreFile(); err != nil {
		return 0, err
	}
	if err := v.StageAll(ctx); err != nil {
		return 0, err
	}

	changed, err := v.HasChanges(ctx)
	if err != nil {
		return 0, err
	}
	if changed {
		if err := v.Commit(ctx, commitMessage); err != nil {
			return 0, err
		}
	}

	if err := v.SetRemote(ctx, "origin", remoteURL); err != nil {
		return 0, err
	}

	return retryWithBackoff(ctx, p.cfg.Retry, "push", func(ctx context.Context) error {
		return v.Push(ctx, "origin", p.cfg.Branch)
	})
}

func (p *Publisher) htmlURL(name string) string {
	return fmt.Sprintf("https://github.com/%s/%s", p.host.Username(), name)
}

func (p *Publisher) cloneURL(name string) string {
	return p.htmlURL(name) + ".git"
}

func fail(out Outcome, err error) Outcome {
	out.Status = StatusFailed
	out.Reason = err.Error()
	return out
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

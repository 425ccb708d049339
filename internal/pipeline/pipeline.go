// Package pipeline sequences a run: scan the tree, present the projects
// for confirmation, publish each one, and aggregate the tally. Per-project
// failures land in the tally; only an invalid root aborts the run here.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/suhteevah/gitpub/internal/publisher"
	"github.com/suhteevah/gitpub/internal/runlog"
	"github.com/suhteevah/gitpub/internal/scanner"
	"github.com/suhteevah/gitpub/internal/types"
)

// Publisher is the per-project publish capability the pipeline drives.
type Publisher interface {
	Publish(ctx context.Context, project types.Project) publisher.Outcome
}

// ConfirmFunc gates publishing after discovery. It receives the projects
// about to be processed; returning false aborts the run cleanly. A nil
// gate means proceed.
type ConfirmFunc func(projects []types.Project) (bool, error)

// Options configures one run.
type Options struct {
	Root       string
	MaxDepth   int
	TaggedOnly bool

	// Parallel is the publish worker count. 1 (or less) is the
	// sequential baseline; higher values use a bounded pool and the
	// report is re-sorted by repository name for determinism.
	Parallel int
}

// Tally aggregates outcomes by status. Append-only during a run.
type Tally struct {
	Succeeded []string
	Skipped   []string
	Failed    []string
}

// Add records one outcome.
func (t *Tally) Add(out publisher.Outcome) {
	switch out.Status {
	case publisher.StatusSucceeded:
		t.Succeeded = append(t.Succeeded, out.RepoName)
	case publisher.StatusSkipped:
		t.Skipped = append(t.Skipped, out.RepoName)
	default:
		t.Failed = append(t.Failed, out.RepoName)
	}
}

// Result is the complete account of one run.
type Result struct {
	RunID       string
	Root        string // root actually scanned, after spelling resolution
	Projects    []types.Project
	Outcomes    []publisher.Outcome
	Tally       Tally
	Aborted     bool // user declined at the confirmation gate
	ScanStats   scanner.Stats
	StartedAt   time.Time
	CompletedAt time.Time
}

// Pipeline wires the scanner and publisher together.
type Pipeline struct {
	pub      Publisher
	confirm  ConfirmFunc
	progress io.Writer
	log      *runlog.Logger
}

// New creates a pipeline. progress may be nil to silence per-project
// lines; log may be nil to skip the run log.
func New(pub Publisher, confirm ConfirmFunc, progress io.Writer, log *runlog.Logger) *Pipeline {
	if progress == nil {
		progress = io.Discard
	}
	return &Pipeline{pub: pub, confirm: confirm, progress: progress, log: log}
}

// Run executes the full pipeline. The returned error is non-nil only for
// fatal conditions (invalid root); everything else is in the Result.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	root := ResolveRoot(opts.Root)
	result.Root = root
	p.log.Printf("run %s: scanning %q (max depth %d, tagged only %v)",
		result.RunID, root, opts.MaxDepth, opts.TaggedOnly)

	scan, err := scanner.Scan(root, scanner.Options{MaxDepth: opts.MaxDepth, TaggedOnly: opts.TaggedOnly})
	if err != nil {
		p.log.Printf("scan failed: %v", err)
		return nil, err
	}
	result.Projects = scan.Projects
	result.ScanStats = scan.Stats
	p.log.Printf("scan complete: %d projects, %d dirs scanned, %d skipped, %d read errors",
		len(scan.Projects), scan.Stats.DirsScanned, scan.Stats.DirsSkipped, scan.Stats.ReadErrors)

	if len(scan.Projects) == 0 {
		result.CompletedAt = time.Now()
		return result, nil
	}

	if p.confirm != nil {
		ok, err := p.confirm(scan.Projects)
		if err != nil {
			return nil, fmt.Errorf("confirmation: %w", err)
		}
		if !ok {
			p.log.Printf("user aborted at confirmation gate")
			result.Aborted = true
			result.CompletedAt = time.Now()
			return result, nil
		}
	}

	if opts.Parallel > 1 {
		result.Outcomes = p.publishParallel(ctx, scan.Projects, opts.Parallel)
	} else {
		result.Outcomes = p.publishSequential(ctx, scan.Projects)
	}

	for _, out := range result.Outcomes {
		result.Tally.Add(out)
	}
	result.CompletedAt = time.Now()
	p.log.Printf("run complete: %d succeeded, %d skipped, %d failed",
		len(result.Tally.Succeeded), len(result.Tally.Skipped), len(result.Tally.Failed))
	return result, nil
}

func (p *Pipeline) publishSequential(ctx context.Context, projects []types.Project) []publisher.Outcome {
	outcomes := make([]publisher.Outcome, 0, len(projects))
	for i, project := range projects {
		fmt.Fprintf(p.progress, "\n[%d/%d] %s\n", i+1, len(projects), project.Name)
		out := p.pub.Publish(ctx, project)
		p.logOutcome(out)
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// publishParallel runs publishes under a bounded worker pool. The tally
// slice is assembled under a lock, then sorted by repository name so the
// report matches what a sequential run would print.
func (p *Pipeline) publishParallel(ctx context.Context, projects []types.Project, workers int) []publisher.Outcome {
	sem := semaphore.NewWeighted(int64(workers))
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		outcomes = make([]publisher.Outcome, 0, len(projects))
	)

	for _, project := range projects {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(project types.Project) {
			defer wg.Done()
			defer sem.Release(1)
			out := p.pub.Publish(ctx, project)
			p.logOutcome(out)
			mu.Lock()
			outcomes = append(outcomes, out)
			mu.Unlock()
		}(project)
	}
	wg.Wait()

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].RepoName < outcomes[j].RepoName
	})
	return outcomes
}

func (p *Pipeline) logOutcome(out publisher.Outcome) {
	if out.Reason != "" {
		p.log.Printf("%s: %s (%s)", out.RepoName, out.Status, out.Reason)
		return
	}
	p.log.Printf("%s: %s attempts=%d url=%s", out.RepoName, out.Status, out.Attempts, out.URL)
}

// ResolveRoot tries common alternate spellings of a scan root before
// giving up on it: trailing separator added or stripped, and the bare
// drive form for Windows-style "X:" paths. The first spelling that exists
// wins; when none do, the original is returned so the scanner reports the
// usual invalid-root error.
func ResolveRoot(root string) string {
	if _, err := os.Stat(root); err == nil {
		return root
	}

	alternatives := []string{
		strings.TrimRight(root, `\/`),
		strings.TrimRight(root, `\/`) + string(os.PathSeparator),
	}
	if len(root) >= 2 && root[1] == ':' {
		alternatives = append(alternatives, root[:2]+`\`, root[:2]+"/", root[:2])
	}

	for _, alt := range alternatives {
		if alt == "" || alt == root {
			continue
		}
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return root
}

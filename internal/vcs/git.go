package vcs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// defaultIgnore is written when a project has no .gitignore of its own,
// so dependency caches and secrets never reach the remote.
const defaultIgnore = `# Dependencies
node_modules/
.venv/
venv/
env/

# Build
dist/
build/
*.egg-info/
__pycache__/

# IDE
.idea/
.vscode/
*.swp
*.swo

# OS
.DS_Store
Thumbs.db

# Environment
.env
.env.local
*.key
*.pem
`

// Git implements VCS by shelling out to the git binary with the project
// directory as working directory.
type Git struct {
	dir string
}

// NewGit returns a git backend rooted at dir.
func NewGit(dir string) *Git {
	return &Git{dir: dir}
}

// run executes a git subcommand in the project directory and returns its
// trimmed combined output. Failures include the output, which is where
// git puts the useful part.
func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		return output, fmt.Errorf("git %s: %w (output: %s)", args[0], err, output)
	}
	return output, nil
}

// IsRepo reports whether the directory has a .git entry. A regular file
// counts: worktrees and submodules use a .git file pointer.
func (g *Git) IsRepo() bool {
	info, err := os.Stat(filepath.Join(g.dir, ".git"))
	return err == nil && (info.IsDir() || info.Mode().IsRegular())
}

// Init creates a repository with the given initial branch.
func (g *Git) Init(ctx context.Context, branch string) error {
	if _, err := g.run(ctx, "init"); err != nil {
		return err
	}
	if _, err := g.run(ctx, "checkout", "-b", branch); err != nil {
		return err
	}
	return nil
}

// CurrentBranch returns the checked-out branch, or empty on detached HEAD
// or when git cannot tell us.
func (g *Git) CurrentBranch(ctx context.Context) string {
	out, err := g.run(ctx, "branch", "--show-current")
	if err != nil {
		return ""
	}
	return out
}

// SwitchBranch checks out the named branch, creating it when it does not
// exist yet.
func (g *Git) SwitchBranch(ctx context.Context, name string) error {
	if _, err := g.run(ctx, "checkout", "-b", name); err == nil {
		return nil
	}
	// Branch may already exist; plain checkout then.
	if _, err := g.run(ctx, "checkout", name); err != nil {
		return err
	}
	return nil
}

// EnsureIgnoreFile writes the default .gitignore if the project has none.
func (g *Git) EnsureIgnoreFile() error {
	path := filepath.Join(g.dir, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(defaultIgnore), 0644)
}

// StageAll stages all changes, including deletions and untracked files.
func (g *Git) StageAll(ctx context.Context) error {
	_, err := g.run(ctx, "add", "-A")
	return err
}

// HasChanges reports whether `git status --porcelain` shows anything.
func (g *Git) HasChanges(ctx context.Context) (bool, error) {
	out, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Commit records staged changes. Callers check HasChanges first; an empty
// commit is never created here.
func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

// RemoteURL looks up a remote's URL. A missing remote is ok=false, not an
// error.
func (g *Git) RemoteURL(ctx context.Context, name string) (string, bool) {
	out, err := g.run(ctx, "remote", "get-url", name)
	if err != nil || out == "" {
		return "", false
	}
	return out, true
}

// SetRemote adds the remote or repoints it when the URL differs.
func (g *Git) SetRemote(ctx context.Context, name, url string) error {
	current, ok := g.RemoteURL(ctx, name)
	switch {
	case !ok:
		_, err := g.run(ctx, "remote", "add", name, url)
		return err
	case current != url:
		_, err := g.run(ctx, "remote", "set-url", name, url)
		return err
	default:
		return nil
	}
}

// Push uploads the branch with upstream tracking.
func (g *Git) Push(ctx context.Context, remote, branch string) error {
	_, err := g.run(ctx, "push", "-u", remote, branch)
	return err
}

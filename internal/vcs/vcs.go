// Package vcs provides an abstraction layer over local version control
// operations. The publisher drives it against each project directory:
// init if needed, stage, commit when dirty, point origin at the remote,
// and push.
package vcs

import (
	"context"
	"errors"
)

// ErrNotARepository is returned by operations that require an initialized
// repository when none is present.
var ErrNotARepository = errors.New("not a repository")

// VCS defines the version-control operations the publish workflow needs.
// Expected conditions (no remote configured, clean working tree) surface
// as booleans or empty results, not errors.
type VCS interface {
	// IsRepo reports whether the directory already contains VCS metadata.
	IsRepo() bool

	// Init initializes a repository on the given branch.
	Init(ctx context.Context, branch string) error

	// CurrentBranch returns the checked-out branch name, or empty when it
	// cannot be determined (detached HEAD, unborn branch).
	CurrentBranch(ctx context.Context) string

	// SwitchBranch switches to the named branch, creating it if needed.
	SwitchBranch(ctx context.Context, name string) error

	// EnsureIgnoreFile writes a default ignore file if none exists.
	EnsureIgnoreFile() error

	// StageAll stages every change in the working tree.
	StageAll(ctx context.Context) error

	// HasChanges reports whether the working tree has pending changes.
	HasChanges(ctx context.Context) (bool, error)

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// RemoteURL returns the URL of the named remote, or ok=false when the
	// remote is not configured.
	RemoteURL(ctx context.Context, name string) (url string, ok bool)

	// SetRemote points the named remote at url, adding or updating as
	// needed. Setting a remote to its current URL is a no-op.
	SetRemote(ctx context.Context, name, url string) error

	// Push uploads the branch to the remote, setting upstream tracking.
	Push(ctx context.Context, remote, branch string) error
}

// Package githost abstracts the remote repository hosting API. The
// publisher only needs existence checks, create/update, and listing;
// everything provider-specific stays behind the Host interface.
package githost

import (
	"context"
	"errors"
	"os"
)

var (
	// ErrMissingToken is returned when no credential can be resolved.
	// This is a fatal configuration error at startup, never a per-project
	// failure.
	ErrMissingToken = errors.New("host token required (set GITPUB_TOKEN, GH_TOKEN, or GITHUB_TOKEN, or pass --token)")

	// ErrNotFound is returned for requests against a repository that does
	// not exist. Callers treat it as an expected branch, not a failure.
	ErrNotFound = errors.New("repository not found")
)

// Repo summarizes a remote repository.
type Repo struct {
	Name        string
	Description string
	HTMLURL     string
	CloneURL    string
	Private     bool
}

// UpdateFields carries the mutable repository metadata for Update.
// Nil fields are left unchanged.
type UpdateFields struct {
	Description *string
	Homepage    *string
}

// Host is the remote-hosting capability the publisher depends on.
// Existence is reported as a boolean, not an error: a repository already
// being present is a normal branch of the publish workflow.
type Host interface {
	// Username returns the authenticated account name.
	Username() string

	// Exists reports whether a repository with this name exists under the
	// authenticated account.
	Exists(ctx context.Context, name string) (bool, error)

	// Create creates a new repository and returns its remote identity.
	Create(ctx context.Context, name, description string, private bool) (*Repo, error)

	// Update patches metadata on an existing repository.
	Update(ctx context.Context, name string, fields UpdateFields) error

	// List returns all repositories of the authenticated account.
	List(ctx context.Context) ([]Repo, error)
}

// ResolveToken picks the credential: an explicit override wins, then the
// environment is consulted in order.
func ResolveToken(override string) string {
	if override != "" {
		return override
	}
	for _, key := range []string{"GITPUB_TOKEN", "GH_TOKEN", "GITHUB_TOKEN"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

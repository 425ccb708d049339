// Package scanner discovers project roots beneath a directory tree.
//
// The scan is a bounded-depth depth-first traversal. A directory whose
// immediate children include a catalog marker is a project root; project
// roots are leaves of the scan (the walk never descends into them), and
// results are deduplicated by canonical path so a subtree reachable
// through several symlink chains is reported once.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/suhteevah/gitpub/internal/markers"
	"github.com/suhteevah/gitpub/internal/types"
)

// ErrInvalidRoot is returned when the scan root does not exist or is not
// a directory. It is the only fatal scan error; unreadable directories
// inside the tree are counted and skipped.
var ErrInvalidRoot = errors.New("scan root does not exist or is not a directory")

// Options controls a scan.
type Options struct {
	// MaxDepth bounds the traversal. The root is depth 0. Directories at
	// MaxDepth are still marker-checked but never descended into.
	MaxDepth int

	// TaggedOnly excludes projects without tool-specific indicators from
	// the result. Detection still terminates traversal at the project
	// boundary either way.
	TaggedOnly bool
}

// Stats counts what happened during a scan.
type Stats struct {
	DirsScanned int
	DirsSkipped int
	ReadErrors  int
}

// Result is an ordered list of discovered projects plus scan statistics.
// Order is depth-first pre-order traversal order, stable for a given tree
// and marker catalog.
type Result struct {
	Projects []types.Project
	Stats    Stats
}

// Scan walks the tree rooted at root and returns every project root found
// within opts.MaxDepth. Per-directory read failures are counted in
// Stats.ReadErrors and the directory is treated as empty.
func Scan(root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}

	s := &walker{opts: opts, seen: make(map[string]struct{}), result: &Result{}}
	s.walk(root, 0)
	return s.result, nil
}

type walker struct {
	opts   Options
	seen   map[string]struct{}
	result *Result
}

func (s *walker) walk(dir string, depth int) {
	if markers.IsPruned(filepath.Base(dir)) {
		s.result.Stats.DirsSkipped++
		return
	}
	s.result.Stats.DirsScanned++

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Permission or I/O problem: count it and treat the directory
		// as empty rather than aborting the scan.
		s.result.Stats.ReadErrors++
		return
	}

	children := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		children[e.Name()] = struct{}{}
	}

	var found []string
	for _, m := range markers.ProjectMarkers() {
		if _, ok := children[m]; ok {
			found = append(found, m)
		}
	}

	if len(found) > 0 {
		// Project root. First-found wins: even if independent projects
		// exist deeper in this subtree, the outer boundary stops the walk.
		canon := canonicalPath(dir)
		if _, dup := s.seen[canon]; dup {
			return
		}
		s.seen[canon] = struct{}{}

		tagged := false
		for _, ind := range markers.TaggedIndicators() {
			if _, ok := children[ind]; ok {
				tagged = true
				break
			}
		}

		if s.opts.TaggedOnly && !tagged {
			return
		}

		_, hasGit := children[".git"]
		ptype, desc := Classify(dir)
		s.result.Projects = append(s.result.Projects, types.Project{
			Name:          filepath.Base(dir),
			Path:          dir,
			CanonicalPath: canon,
			Type:          ptype,
			Description:   desc,
			HasGit:        hasGit,
			Tagged:        tagged,
			MarkersFound:  found,
		})
		return
	}

	if depth >= s.opts.MaxDepth {
		return
	}

	for _, e := range entries {
		child := filepath.Join(dir, e.Name())
		// Stat rather than e.IsDir so symlinked directories are traversed;
		// the canonical-path dedup above keeps them from double-reporting.
		fi, err := os.Stat(child)
		if err != nil || !fi.IsDir() {
			continue
		}
		s.walk(child, depth+1)
	}
}

// canonicalPath resolves dir to its absolute, symlink-free form. When
// resolution fails the absolute path is used as-is; dedup degrades to
// exact-path matching rather than failing the scan.
func canonicalPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

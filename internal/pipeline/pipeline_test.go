package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhteevah/gitpub/internal/publisher"
	"github.com/suhteevah/gitpub/internal/scanner"
	"github.com/suhteevah/gitpub/internal/types"
)

// fakePublisher maps project names to canned outcomes.
type fakePublisher struct {
	mu        sync.Mutex
	statuses  map[string]publisher.Status
	published []string
}

func (f *fakePublisher) Publish(ctx context.Context, project types.Project) publisher.Outcome {
	f.mu.Lock()
	f.published = append(f.published, project.Name)
	f.mu.Unlock()

	status := publisher.StatusSucceeded
	if s, ok := f.statuses[project.Name]; ok {
		status = s
	}
	return publisher.Outcome{
		Project:  project,
		RepoName: project.Name,
		Status:   status,
	}
}

// scanRoot builds a root with one marker-bearing child per name.
func scanRoot(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/x\n"), 0644))
	}
	return root
}

func TestRunPublishesAllProjects(t *testing.T) {
	root := scanRoot(t, "alpha", "beta", "gamma")
	pub := &fakePublisher{statuses: map[string]publisher.Status{
		"beta":  publisher.StatusSkipped,
		"gamma": publisher.StatusFailed,
	}}
	var progress bytes.Buffer
	p := New(pub, nil, &progress, nil)

	result, err := p.Run(context.Background(), Options{Root: root, MaxDepth: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.Aborted)
	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, []string{"alpha"}, result.Tally.Succeeded)
	assert.Equal(t, []string{"beta"}, result.Tally.Skipped)
	assert.Equal(t, []string{"gamma"}, result.Tally.Failed)
	assert.False(t, result.CompletedAt.Before(result.StartedAt))

	// Sequential progress lines carry position and name.
	assert.Contains(t, progress.String(), "[1/3] alpha")
	assert.Contains(t, progress.String(), "[3/3] gamma")
}

func TestRunInvalidRootIsFatal(t *testing.T) {
	p := New(&fakePublisher{}, nil, nil, nil)
	_, err := p.Run(context.Background(), Options{Root: filepath.Join(t.TempDir(), "missing"), MaxDepth: 3})
	assert.ErrorIs(t, err, scanner.ErrInvalidRoot)
}

func TestRunNoProjects(t *testing.T) {
	pub := &fakePublisher{}
	confirmCalled := false
	p := New(pub, func(projects []types.Project) (bool, error) {
		confirmCalled = true
		return true, nil
	}, nil, nil)

	result, err := p.Run(context.Background(), Options{Root: t.TempDir(), MaxDepth: 3})
	require.NoError(t, err)

	assert.Empty(t, result.Projects)
	assert.Empty(t, result.Outcomes)
	assert.False(t, confirmCalled)
	assert.Empty(t, pub.published)
}

func TestRunConfirmationDeclined(t *testing.T) {
	root := scanRoot(t, "alpha")
	pub := &fakePublisher{}
	p := New(pub, func(projects []types.Project) (bool, error) {
		return false, nil
	}, nil, nil)

	result, err := p.Run(context.Background(), Options{Root: root, MaxDepth: 3})
	require.NoError(t, err)

	assert.True(t, result.Aborted)
	assert.Empty(t, result.Outcomes)
	assert.Empty(t, pub.published)
}

func TestRunConfirmationError(t *testing.T) {
	root := scanRoot(t, "alpha")
	p := New(&fakePublisher{}, func(projects []types.Project) (bool, error) {
		return false, errors.New("stdin closed")
	}, nil, nil)

	_, err := p.Run(context.Background(), Options{Root: root, MaxDepth: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmation")
}

func TestRunParallelOutcomesSorted(t *testing.T) {
	names := []string{"echo", "alpha", "delta", "charlie", "bravo"}
	root := scanRoot(t, names...)
	pub := &fakePublisher{}
	p := New(pub, nil, nil, nil)

	result, err := p.Run(context.Background(), Options{Root: root, MaxDepth: 3, Parallel: 3})
	require.NoError(t, err)

	require.Len(t, result.Outcomes, len(names))
	var got []string
	for _, out := range result.Outcomes {
		got = append(got, out.RepoName)
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo"}, got)
	assert.Len(t, result.Tally.Succeeded, len(names))
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()

	// Existing path is returned untouched.
	assert.Equal(t, dir, ResolveRoot(dir))

	// A spelling with stray trailing separators resolves to something
	// that exists, whichever variant the platform accepts.
	withSep := dir + string(os.PathSeparator) + string(os.PathSeparator)
	resolved := ResolveRoot(withSep)
	_, err := os.Stat(resolved)
	assert.NoError(t, err)

	// Unresolvable spellings come back unchanged.
	missing := filepath.Join(dir, "nope")
	assert.Equal(t, missing, ResolveRoot(missing))
}

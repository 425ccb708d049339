package githost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHost starts a fake API server and returns a client bound to it.
// The handler receives requests after the /user auth check has passed.
func newTestHost(t *testing.T, handler http.HandlerFunc) (*GitHub, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/user" {
			fmt.Fprint(w, `{"login": "suhteevah"}`)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	g, err := NewGitHub(context.Background(), Config{
		Token:   "ghp_testtoken",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return g, srv
}

func TestNewGitHubMissingToken(t *testing.T) {
	t.Setenv("GITPUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	_, err := NewGitHub(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewGitHubAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	}))
	defer srv.Close()

	_, err := NewGitHub(context.Background(), Config{Token: "ghp_bad", BaseURL: srv.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad credentials")
}

func TestUsername(t *testing.T) {
	g, _ := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, "suhteevah", g.Username())
}

func TestExists(t *testing.T) {
	g, _ := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/suhteevah/present":
			fmt.Fprint(w, `{"name": "present"}`)
		case "/repos/suhteevah/absent":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	ok, err := g.Exists(context.Background(), "present")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Exists(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExistsServerError(t *testing.T) {
	g, _ := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "rate limited"}`)
	})

	_, err := g.Exists(context.Background(), "anything")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "rate limited", apiErr.Message)
}

func TestCreate(t *testing.T) {
	var got map[string]any
	g, _ := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/repos", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{
			"name": "my-tool",
			"html_url": "https://github.com/suhteevah/my-tool",
			"clone_url": "https://github.com/suhteevah/my-tool.git",
			"private": true
		}`)
	})

	repo, err := g.Create(context.Background(), "my-tool", "Does cool stuff.", true)
	require.NoError(t, err)

	assert.Equal(t, "my-tool", got["name"])
	assert.Equal(t, "Does cool stuff.", got["description"])
	assert.Equal(t, true, got["private"])
	assert.Equal(t, false, got["auto_init"])

	assert.Equal(t, "my-tool", repo.Name)
	assert.Equal(t, "https://github.com/suhteevah/my-tool", repo.HTMLURL)
	assert.Equal(t, "https://github.com/suhteevah/my-tool.git", repo.CloneURL)
	assert.True(t, repo.Private)
}

func TestUpdate(t *testing.T) {
	var got map[string]any
	g, _ := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/repos/suhteevah/my-tool", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	desc := "new description"
	err := g.Update(context.Background(), "my-tool", UpdateFields{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "new description", got["description"])
	assert.NotContains(t, got, "homepage")
}

func TestUpdateNoFieldsIsNoop(t *testing.T) {
	g, _ := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected API call")
	})
	require.NoError(t, g.Update(context.Background(), "my-tool", UpdateFields{}))
}

func TestListPaginates(t *testing.T) {
	g, _ := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		var repos []repoJSON
		switch page {
		case 1:
			for i := 0; i < listPageSize; i++ {
				repos = append(repos, repoJSON{Name: fmt.Sprintf("repo-%03d", i)})
			}
		case 2:
			repos = append(repos, repoJSON{Name: "last-one"})
		default:
			t.Errorf("unexpected page %d", page)
		}
		require.NoError(t, json.NewEncoder(w).Encode(repos))
	})

	repos, err := g.List(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, listPageSize+1)
	assert.Equal(t, "repo-000", repos[0].Name)
	assert.Equal(t, "last-one", repos[listPageSize].Name)
}

func TestResolveToken(t *testing.T) {
	t.Setenv("GITPUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	assert.Equal(t, "", ResolveToken(""))
	assert.Equal(t, "flag-wins", ResolveToken("flag-wins"))

	t.Setenv("GITHUB_TOKEN", "from-github-token")
	assert.Equal(t, "from-github-token", ResolveToken(""))

	t.Setenv("GH_TOKEN", "from-gh-token")
	assert.Equal(t, "from-gh-token", ResolveToken(""))

	t.Setenv("GITPUB_TOKEN", "from-gitpub-token")
	assert.Equal(t, "from-gitpub-token", ResolveToken(""))

	assert.Equal(t, "flag-wins", ResolveToken("flag-wins"))
}

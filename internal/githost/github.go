package githost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.github.com"
	listPageSize   = 100
)

// knownTokenPrefixes are the prefixes GitHub issues tokens with. A token
// without one usually means the wrong value ended up in the environment.
var knownTokenPrefixes = []string{"ghp_", "gho_", "github_pat_"}

// APIError is a non-404 error response from the hosting API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (%d): %s", e.Status, e.Message)
}

// Config configures a GitHub host client.
type Config struct {
	// Token is the bearer credential. When empty, ResolveToken order is
	// applied against the environment.
	Token string

	// BaseURL overrides the API endpoint. Tests point this at a local
	// server; empty means api.github.com.
	BaseURL string

	// HTTPClient overrides the HTTP client. The default applies a 30s
	// timeout so a stalled host API cannot hang the run.
	HTTPClient *http.Client
}

// GitHub implements Host against the GitHub REST API.
type GitHub struct {
	token    string
	username string
	baseURL  string
	client   *http.Client

	// limiter spaces out API calls to stay under secondary rate limits.
	// It delays requests, never drops them.
	limiter *rate.Limiter
}

// NewGitHub builds a client and verifies the credential by looking up the
// authenticated user. An unresolvable token or failed auth is returned as
// an error; both abort the run before any project is processed.
func NewGitHub(ctx context.Context, cfg Config) (*GitHub, error) {
	token := ResolveToken(cfg.Token)
	if token == "" {
		return nil, ErrMissingToken
	}
	warnUnknownTokenPrefix(token)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	g := &GitHub{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := g.do(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, fmt.Errorf("authenticating with GitHub: %w", err)
	}
	if user.Login == "" {
		return nil, fmt.Errorf("authenticating with GitHub: no login in /user response")
	}
	g.username = user.Login
	return g, nil
}

func warnUnknownTokenPrefix(token string) {
	for _, p := range knownTokenPrefixes {
		if strings.HasPrefix(token, p) {
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Warning: token does not start with a known GitHub prefix; auth may fail\n")
}

// Username returns the authenticated account name.
func (g *GitHub) Username() string {
	return g.username
}

// Exists reports whether the authenticated user owns a repository with
// this name. A 404 is a normal "no", not an error.
func (g *GitHub) Exists(ctx context.Context, name string) (bool, error) {
	err := g.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s", g.username, name), nil, nil)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// Create creates a repository under the authenticated user.
func (g *GitHub) Create(ctx context.Context, name, description string, private bool) (*Repo, error) {
	payload := map[string]any{
		"name":         name,
		"description":  description,
		"private":      private,
		"auto_init":    false,
		"has_issues":   true,
		"has_projects": false,
		"has_wiki":     false,
	}
	var r repoJSON
	if err := g.do(ctx, http.MethodPost, "/user/repos", payload, &r); err != nil {
		return nil, err
	}
	repo := r.toRepo()
	return &repo, nil
}

// Update patches repository metadata. A call with no fields set is a no-op.
func (g *GitHub) Update(ctx context.Context, name string, fields UpdateFields) error {
	payload := map[string]any{}
	if fields.Description != nil {
		payload["description"] = *fields.Description
	}
	if fields.Homepage != nil {
		payload["homepage"] = *fields.Homepage
	}
	if len(payload) == 0 {
		return nil
	}
	return g.do(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/%s", g.username, name), payload, nil)
}

// List pages through /user/repos until a short page signals the end.
func (g *GitHub) List(ctx context.Context) ([]Repo, error) {
	var repos []Repo
	for page := 1; ; page++ {
		var pageRepos []repoJSON
		path := fmt.Sprintf("/user/repos?per_page=%d&page=%d", listPageSize, page)
		if err := g.do(ctx, http.MethodGet, path, nil, &pageRepos); err != nil {
			return nil, err
		}
		for _, r := range pageRepos {
			repos = append(repos, r.toRepo())
		}
		if len(pageRepos) < listPageSize {
			break
		}
	}
	return repos, nil
}

type repoJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	CloneURL    string `json:"clone_url"`
	Private     bool   `json:"private"`
}

func (r repoJSON) toRepo() Repo {
	return Repo{
		Name:        r.Name,
		Description: r.Description,
		HTMLURL:     r.HTMLURL,
		CloneURL:    r.CloneURL,
		Private:     r.Private,
	}
}

// do performs one authenticated API request. 404 responses map to
// ErrNotFound, other non-2xx responses to *APIError.
func (g *GitHub) do(ctx context.Context, method, path string, payload, out any) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "gitpub")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling GitHub API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			if json.Unmarshal(data, &msg) == nil && msg.Message != "" {
				apiErr.Message = msg.Message
			} else {
				apiErr.Message = strings.TrimSpace(string(data))
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

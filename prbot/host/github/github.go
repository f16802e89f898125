package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/llm_gitops/prbot/host"
)

// Config holds the settings needed to create a GitHub
// host.
type Config struct {
	// RepoOwner is the GitHub user or organisation
	// that owns the repository.
	RepoOwner string
	// Repo is the repository name (without owner).
	Repo string
	// AccessToken is a personal access token or
	// GitHub App token. Optional: without it reads
	// run unauthenticated at lower rate limits and
	// publishing operations will be rejected by the
	// API.
	AccessToken string
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname (e.g. "git.corp.example.com"). Leave
	// empty for github.com.
	EnterpriseHost string
}

// Provider reads and publishes through the GitHub REST
// API.
//
// Pattern: Strategy -- implements host.Host.
type Provider struct {
	client    *gh.Client
	repoOwner string
	repo      string
}

// NewProvider validates cfg and returns a Provider
// bound to one repository.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating github host"

	if cfg.RepoOwner == "" {
		return nil, fmt.Errorf(
			"%s: repo owner must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	client := gh.NewClient(nil)

	if cfg.AccessToken != "" {
		client = client.WithAuthToken(cfg.AccessToken)
	}

	if cfg.EnterpriseHost != "" {
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}
	}

	return &Provider{
		client:    client,
		repoOwner: cfg.RepoOwner,
		repo:      cfg.Repo,
	}, nil
}

// ListDir returns one level of the content listing
// under path via the contents endpoint.
func (p *Provider) ListDir(
	ctx context.Context,
	path string,
) ([]host.Entry, error) {
	const errCtx = "listing directory"

	_, dir, _, err := p.client.Repositories.GetContents(
		ctx, p.repoOwner, p.repo, path,
		&gh.RepositoryContentGetOptions{},
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s %q: %w", errCtx, path, err,
		)
	}

	if dir == nil {
		return nil, fmt.Errorf(
			"%s %q: not a directory", errCtx, path,
		)
	}

	entries := make([]host.Entry, 0, len(dir))

	for _, c := range dir {
		switch c.GetType() {
		case "file":
			entries = append(entries, host.Entry{
				Path: c.GetPath(),
				SHA:  c.GetSHA(),
				Type: host.TypeFile,
			})
		case "dir":
			entries = append(entries, host.Entry{
				Path: c.GetPath(),
				SHA:  c.GetSHA(),
				Type: host.TypeDir,
			})
		default:
			// Symlinks and submodules carry no
			// fetchable content.
			continue
		}
	}

	return entries, nil
}

// GetBlob fetches a blob by content hash and decodes
// it from its base64 transport encoding.
func (p *Provider) GetBlob(
	ctx context.Context,
	sha string,
) (string, error) {
	const errCtx = "fetching blob"

	blob, _, err := p.client.Git.GetBlob(
		ctx, p.repoOwner, p.repo, sha,
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s %s: %w", errCtx, sha, err,
		)
	}

	raw := blob.GetContent()

	if blob.GetEncoding() != "base64" {
		return raw, nil
	}

	// The API inserts line breaks into the base64
	// payload.
	decoded, err := base64.StdEncoding.DecodeString(
		strings.ReplaceAll(raw, "\n", ""),
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s %s: decode: %w", errCtx, sha, err,
		)
	}

	return string(decoded), nil
}

// DefaultBranch returns the repository's default
// branch name.
func (p *Provider) DefaultBranch(
	ctx context.Context,
) (string, error) {
	const errCtx = "getting default branch"

	repo, _, err := p.client.Repositories.Get(
		ctx, p.repoOwner, p.repo,
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return repo.GetDefaultBranch(), nil
}

// CreateBranch resolves the head commit of branch from
// and creates a new ref at that same commit.
func (p *Provider) CreateBranch(
	ctx context.Context,
	name string,
	from string,
) error {
	const errCtx = "creating branch"

	baseRef, _, err := p.client.Git.GetRef(
		ctx, p.repoOwner, p.repo,
		"refs/heads/"+from,
	)
	if err != nil {
		return fmt.Errorf(
			"%s: resolve %s: %w", errCtx, from, err,
		)
	}

	newRef := &gh.Reference{
		Ref: gh.Ptr("refs/heads/" + name),
		Object: &gh.GitObject{
			SHA: baseRef.Object.SHA,
		},
	}

	_, _, err = p.client.Git.CreateRef(
		ctx, p.repoOwner, p.repo, newRef,
	)
	if err != nil {
		return fmt.Errorf(
			"%s %s: %w", errCtx, name, err,
		)
	}

	slog.Info("created branch", "name", name)

	return nil
}

// PutFile creates or updates path on branch. The
// library base64-encodes the content for transport.
func (p *Provider) PutFile(
	ctx context.Context,
	branch string,
	path string,
	content string,
	message string,
) error {
	const errCtx = "writing file"

	opts := &gh.RepositoryContentFileOptions{
		Message: &message,
		Content: []byte(content),
		Branch:  &branch,
	}

	existing, _, _, err := p.client.Repositories.GetContents(
		ctx, p.repoOwner, p.repo, path,
		&gh.RepositoryContentGetOptions{Ref: branch},
	)

	if err == nil && existing != nil {
		// Updating an existing file requires its
		// current blob SHA.
		opts.SHA = existing.SHA

		_, _, err = p.client.Repositories.UpdateFile(
			ctx, p.repoOwner, p.repo, path, opts,
		)
	} else {
		_, _, err = p.client.Repositories.CreateFile(
			ctx, p.repoOwner, p.repo, path, opts,
		)
	}

	if err != nil {
		return fmt.Errorf(
			"%s %s: %w", errCtx, path, err,
		)
	}

	return nil
}

// CreatePR opens a pull request from branch "from"
// into branch "to".
func (p *Provider) CreatePR(
	ctx context.Context,
	from string,
	to string,
	title string,
	body string,
) (host.PullRequest, error) {
	const errCtx = "creating github pull request"

	pr := &gh.NewPullRequest{
		Title: &title,
		Head:  &from,
		Base:  &to,
		Body:  &body,
	}

	created, _, err := p.client.PullRequests.Create(
		ctx, p.repoOwner, p.repo, pr,
	)
	if err != nil {
		return host.PullRequest{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	slog.Info(
		"created pull request",
		"url", created.GetHTMLURL(),
	)

	return host.PullRequest{
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
	}, nil
}

// Comment posts an issue comment on the pull request.
func (p *Provider) Comment(
	ctx context.Context,
	pr host.PullRequest,
	body string,
) error {
	const errCtx = "commenting on pull request"

	_, _, err := p.client.Issues.CreateComment(
		ctx, p.repoOwner, p.repo, pr.Number,
		&gh.IssueComment{Body: &body},
	)
	if err != nil {
		return fmt.Errorf(
			"%s #%d: %w", errCtx, pr.Number, err,
		)
	}

	return nil
}

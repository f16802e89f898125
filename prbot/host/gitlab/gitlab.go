package gitlab

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/byte4ever/llm_gitops/prbot/host"
)

// Config holds the settings needed to create a GitLab
// host.
type Config struct {
	// Host is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	Host string
	// Repo is the full project path
	// (e.g. "org/project").
	Repo string
	// AccessToken is a personal or project access
	// token used for authentication.
	AccessToken string
}

// Provider reads and publishes through the GitLab REST
// API.
//
// Pattern: Strategy -- implements host.Host.
type Provider struct {
	client *gl.Client
	repo   string
}

// NewProvider validates cfg and returns a Provider
// bound to one project.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating gitlab host"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	baseURL := cfg.Host
	if baseURL == "" {
		baseURL = "https://gitlab.com"
	}

	client, err := gl.NewClient(
		cfg.AccessToken,
		gl.WithBaseURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: new client: %w", errCtx, err,
		)
	}

	return &Provider{
		client: client,
		repo:   cfg.Repo,
	}, nil
}

// ListDir returns one level of the repository tree
// under path.
func (p *Provider) ListDir(
	ctx context.Context,
	path string,
) ([]host.Entry, error) {
	const errCtx = "listing tree"

	opts := &gl.ListTreeOptions{}
	if path != "" {
		opts.Path = &path
	}

	nodes, _, err := p.client.Repositories.ListTree(
		p.repo, opts, gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s %q: %w", errCtx, path, err,
		)
	}

	entries := make([]host.Entry, 0, len(nodes))

	for _, n := range nodes {
		switch n.Type {
		case "blob":
			entries = append(entries, host.Entry{
				Path: n.Path,
				SHA:  n.ID,
				Type: host.TypeFile,
			})
		case "tree":
			entries = append(entries, host.Entry{
				Path: n.Path,
				SHA:  n.ID,
				Type: host.TypeDir,
			})
		default:
			continue
		}
	}

	return entries, nil
}

// GetBlob fetches a blob by content hash. GitLab
// serves raw bytes, so no transport decoding is
// needed.
func (p *Provider) GetBlob(
	ctx context.Context,
	sha string,
) (string, error) {
	const errCtx = "fetching blob"

	raw, _, err := p.client.Repositories.RawBlobContent(
		p.repo, sha, gl.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s %s: %w", errCtx, sha, err,
		)
	}

	return string(raw), nil
}

// DefaultBranch returns the project's default branch
// name.
func (p *Provider) DefaultBranch(
	ctx context.Context,
) (string, error) {
	const errCtx = "getting default branch"

	project, _, err := p.client.Projects.GetProject(
		p.repo,
		&gl.GetProjectOptions{},
		gl.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return project.DefaultBranch, nil
}

// CreateBranch creates branch name from the head of
// branch from. The ref is resolved server-side.
func (p *Provider) CreateBranch(
	ctx context.Context,
	name string,
	from string,
) error {
	const errCtx = "creating branch"

	_, _, err := p.client.Branches.CreateBranch(
		p.repo,
		&gl.CreateBranchOptions{
			Branch: &name,
			Ref:    &from,
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf(
			"%s %s: %w", errCtx, name, err,
		)
	}

	slog.Info("created branch", "name", name)

	return nil
}

// PutFile creates or updates path on branch, sending
// the content base64-encoded.
func (p *Provider) PutFile(
	ctx context.Context,
	branch string,
	path string,
	content string,
	message string,
) error {
	const errCtx = "writing file"

	encoded := base64.StdEncoding.EncodeToString(
		[]byte(content),
	)
	encoding := "base64"

	_, _, err := p.client.RepositoryFiles.GetFile(
		p.repo, path,
		&gl.GetFileOptions{Ref: &branch},
		gl.WithContext(ctx),
	)

	if err != nil {
		// File does not exist on the branch yet.
		_, _, err = p.client.RepositoryFiles.CreateFile(
			p.repo, path,
			&gl.CreateFileOptions{
				Branch:        &branch,
				Content:       &encoded,
				CommitMessage: &message,
				Encoding:      &encoding,
			},
			gl.WithContext(ctx),
		)
	} else {
		_, _, err = p.client.RepositoryFiles.UpdateFile(
			p.repo, path,
			&gl.UpdateFileOptions{
				Branch:        &branch,
				Content:       &encoded,
				CommitMessage: &message,
				Encoding:      &encoding,
			},
			gl.WithContext(ctx),
		)
	}

	if err != nil {
		return fmt.Errorf(
			"%s %s: %w", errCtx, path, err,
		)
	}

	return nil
}

// CreatePR creates a merge request from branch "from"
// into branch "to".
func (p *Provider) CreatePR(
	ctx context.Context,
	from string,
	to string,
	title string,
	body string,
) (host.PullRequest, error) {
	const errCtx = "creating gitlab merge request"

	created, _, err := p.client.MergeRequests.CreateMergeRequest(
		p.repo,
		&gl.CreateMergeRequestOptions{
			Title:        &title,
			Description:  &body,
			SourceBranch: &from,
			TargetBranch: &to,
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return host.PullRequest{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	slog.Info(
		"created merge request",
		"url", created.WebURL,
	)

	return host.PullRequest{
		Number: int(created.IID),
		URL:    created.WebURL,
	}, nil
}

// Comment posts a note on the merge request.
func (p *Provider) Comment(
	ctx context.Context,
	pr host.PullRequest,
	body string,
) error {
	const errCtx = "commenting on merge request"

	_, _, err := p.client.Notes.CreateMergeRequestNote(
		p.repo, int64(pr.Number),
		&gl.CreateMergeRequestNoteOptions{
			Body: &body,
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf(
			"%s !%d: %w", errCtx, pr.Number, err,
		)
	}

	return nil
}

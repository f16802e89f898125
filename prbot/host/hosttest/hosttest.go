// Package hosttest provides an in-memory host.Host implementation for
// tests. The fake records every publishing operation and supports
// per-path fault injection on the read side.
package hosttest

import (
	"context"
	"fmt"

	"github.com/byte4ever/llm_gitops/prbot/host"
)

// Write records one PutFile call.
type Write struct {
	Branch  string
	Path    string
	Content string
	Message string
}

// PR records one CreatePR call.
type PR struct {
	From  string
	To    string
	Title string
	Body  string
}

// Fake is an in-memory host.Host. The zero value is
// usable; populate Dirs/Blobs for reads and inspect
// the recorded slices after publishing.
type Fake struct {
	// Branch is the default branch name.
	Branch string

	// Dirs maps a directory path ("" is the root) to
	// its listing.
	Dirs map[string][]host.Entry
	// Blobs maps a content hash to decoded content.
	Blobs map[string]string

	// ListErr injects a listing failure for a path.
	ListErr map[string]error
	// BlobErr injects a blob fetch failure for a
	// hash.
	BlobErr map[string]error

	// CreateBranchErr, PutFileErr, CreatePRErr, and
	// CommentErr inject failures into the publishing
	// steps.
	CreateBranchErr error
	PutFileErr      error
	CreatePRErr     error
	CommentErr      error

	// Recorded publishing operations, in call order.
	Branches []string
	Writes   []Write
	PRs      []PR
	Comments []string
}

var _ host.Host = (*Fake)(nil)

// ListDir returns the configured listing for path.
func (f *Fake) ListDir(
	_ context.Context,
	path string,
) ([]host.Entry, error) {
	if err := f.ListErr[path]; err != nil {
		return nil, err
	}

	entries, ok := f.Dirs[path]
	if !ok {
		return nil, fmt.Errorf(
			"no such directory: %q", path,
		)
	}

	return entries, nil
}

// GetBlob returns the configured content for sha.
func (f *Fake) GetBlob(
	_ context.Context,
	sha string,
) (string, error) {
	if err := f.BlobErr[sha]; err != nil {
		return "", err
	}

	content, ok := f.Blobs[sha]
	if !ok {
		return "", fmt.Errorf("no such blob: %s", sha)
	}

	return content, nil
}

// DefaultBranch returns the configured branch name.
func (f *Fake) DefaultBranch(
	_ context.Context,
) (string, error) {
	if f.Branch == "" {
		return "main", nil
	}

	return f.Branch, nil
}

// CreateBranch records the branch creation.
func (f *Fake) CreateBranch(
	_ context.Context,
	name string,
	_ string,
) error {
	if f.CreateBranchErr != nil {
		return f.CreateBranchErr
	}

	f.Branches = append(f.Branches, name)

	return nil
}

// PutFile records the file write.
func (f *Fake) PutFile(
	_ context.Context,
	branch string,
	path string,
	content string,
	message string,
) error {
	if f.PutFileErr != nil {
		return f.PutFileErr
	}

	f.Writes = append(f.Writes, Write{
		Branch:  branch,
		Path:    path,
		Content: content,
		Message: message,
	})

	return nil
}

// CreatePR records the pull request creation.
func (f *Fake) CreatePR(
	_ context.Context,
	from string,
	to string,
	title string,
	body string,
) (host.PullRequest, error) {
	if f.CreatePRErr != nil {
		return host.PullRequest{}, f.CreatePRErr
	}

	f.PRs = append(f.PRs, PR{
		From:  from,
		To:    to,
		Title: title,
		Body:  body,
	})

	number := len(f.PRs)

	return host.PullRequest{
		Number: number,
		URL: fmt.Sprintf(
			"https://example.test/pr/%d", number,
		),
	}, nil
}

// Comment records the comment body.
func (f *Fake) Comment(
	_ context.Context,
	_ host.PullRequest,
	body string,
) error {
	if f.CommentErr != nil {
		return f.CommentErr
	}

	f.Comments = append(f.Comments, body)

	return nil
}

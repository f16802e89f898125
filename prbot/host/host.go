package host

import "context"

// Pattern: Strategy -- swap git hosting platform
// without changing the pipeline.

// EntryType discriminates directory listing entries.
type EntryType int

const (
	// TypeFile marks a regular file entry.
	TypeFile EntryType = iota
	// TypeDir marks a directory entry.
	TypeDir
)

// Entry is one element of a directory listing.
type Entry struct {
	// Path is relative to the repository root.
	Path string
	// SHA is the content hash assigned by the host.
	SHA string
	// Type tells files from directories.
	Type EntryType
}

// File is a repository file with decoded text content.
type File struct {
	// Path is relative to the repository root.
	Path string
	// SHA is the content hash assigned by the host.
	SHA string
	// Content is the decoded text content.
	Content string
}

// PullRequest identifies a created pull request.
type PullRequest struct {
	// Number is the host-assigned PR number.
	Number int
	// URL is the web URL of the pull request.
	URL string
}

// Host is a version-control hosting platform. All
// methods target a single repository fixed at
// construction time.
type Host interface {
	// ListDir returns one level of the content
	// listing under path. Empty path means the
	// repository root. Entry order is whatever the
	// host returns.
	ListDir(
		ctx context.Context,
		path string,
	) ([]Entry, error)

	// GetBlob fetches a blob by content hash and
	// decodes it from its transport encoding into
	// text.
	GetBlob(
		ctx context.Context,
		sha string,
	) (string, error)

	// DefaultBranch returns the repository's default
	// branch name.
	DefaultBranch(ctx context.Context) (string, error)

	// CreateBranch creates branch name pointing at
	// the current head commit of branch from.
	CreateBranch(
		ctx context.Context,
		name string,
		from string,
	) error

	// PutFile creates or updates path on branch with
	// content, committing with message. One commit
	// per call.
	PutFile(
		ctx context.Context,
		branch string,
		path string,
		content string,
		message string,
	) error

	// CreatePR opens a pull request from branch
	// "from" into branch "to".
	CreatePR(
		ctx context.Context,
		from string,
		to string,
		title string,
		body string,
	) (PullRequest, error)

	// Comment posts a comment on the pull request.
	Comment(
		ctx context.Context,
		pr PullRequest,
		body string,
	) error
}

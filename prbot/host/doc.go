// Package host abstracts a version-control hosting platform behind a
// strategy interface covering the operations the pipeline needs: reading
// the repository tree and blobs, and publishing a branch, file commits, a
// pull request, and a comment.
//
// Implementations exist for GitHub and GitLab in sub-packages. The
// hosttest sub-package provides an in-memory fake for tests.
package host

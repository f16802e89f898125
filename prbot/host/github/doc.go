// Package github implements host.Host on the GitHub REST API using
// google/go-github. Reads go through the contents and git-blob
// endpoints; writes go through the git-refs, repository-contents,
// pull-request, and issue-comment endpoints.
package github

// Package gitlab implements host.Host on the GitLab REST API using
// gitlab-org/api/client-go. Reads go through the repository tree and
// raw-blob endpoints; writes go through the branches, repository-files,
// merge-request, and note endpoints.
package gitlab

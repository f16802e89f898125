// Package pipeline chains the whole run: read the
// change request, fetch the repository, query the
// model, decode its reply and publish the result as a
// pull request. A dry run stops before publishing and
// writes the decoded change set as a JSON artifact
// instead.
package pipeline

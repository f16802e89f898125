package respxml

import (
	"encoding/xml"
	"fmt"
)

// FileEdit is the desired final text of one file. The
// path is not validated against the repository: an
// edit may create a new file or overwrite an existing
// one.
type FileEdit struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ChangeSet is the decoded model proposal: pull
// request metadata plus file edits in document order.
type ChangeSet struct {
	Title string
	Body  string
	Edits []FileEdit
}

// xmlResponse mirrors the wire schema of the payload.
type xmlResponse struct {
	XMLName     xml.Name        `xml:"response"`
	PullRequest *xmlPullRequest `xml:"pullRequest"`
	Files       *xmlFiles       `xml:"files"`
}

// xmlPullRequest holds the pull request metadata
// element. Body is a pointer to tell an absent element
// from a present empty one.
type xmlPullRequest struct {
	Title string  `xml:"title"`
	Body  *string `xml:"body"`
}

// xmlFiles wraps the repeatable file elements.
type xmlFiles struct {
	File []xmlFile `xml:"file"`
}

// xmlFile holds one file edit element. Content is a
// pointer for the same absent-versus-empty reason.
type xmlFile struct {
	Path    string  `xml:"path"`
	Content *string `xml:"content"`
}

// Decode parses an extracted payload against the
// schema. The structure must match exactly: a missing
// pullRequest, title, body, files element, file path,
// or file content is an error. Edit order is preserved
// from document order.
func Decode(payload string) (*ChangeSet, error) {
	const errCtx = "decoding response payload"

	var doc xmlResponse

	if err := xml.Unmarshal(
		[]byte(payload), &doc,
	); err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	if doc.PullRequest == nil {
		return nil, fmt.Errorf(
			"%s: missing pullRequest element", errCtx,
		)
	}

	if doc.PullRequest.Title == "" {
		return nil, fmt.Errorf(
			"%s: missing pull request title", errCtx,
		)
	}

	if doc.PullRequest.Body == nil {
		return nil, fmt.Errorf(
			"%s: missing pull request body", errCtx,
		)
	}

	if doc.Files == nil {
		return nil, fmt.Errorf(
			"%s: missing files element", errCtx,
		)
	}

	cs := &ChangeSet{
		Title: doc.PullRequest.Title,
		Body:  *doc.PullRequest.Body,
		Edits: make([]FileEdit, 0, len(doc.Files.File)),
	}

	for i, f := range doc.Files.File {
		if f.Path == "" {
			return nil, fmt.Errorf(
				"%s: file %d has no path", errCtx, i,
			)
		}

		if f.Content == nil {
			return nil, fmt.Errorf(
				"%s: file %d has no content", errCtx, i,
			)
		}

		cs.Edits = append(cs.Edits, FileEdit{
			Path:    f.Path,
			Content: *f.Content,
		})
	}

	return cs, nil
}

// Parse runs both stages: Extract then Decode.
func Parse(text string) (*ChangeSet, error) {
	payload, err := Extract(text)
	if err != nil {
		return nil, err
	}

	return Decode(payload)
}

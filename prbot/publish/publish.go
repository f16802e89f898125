package publish

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/byte4ever/llm_gitops/prbot/host"
	"github.com/byte4ever/llm_gitops/prbot/respxml"
)

// Slugify lowercases s and collapses every run of
// non-alphanumeric characters into a single hyphen.
// Leading and trailing hyphens are dropped, so the
// result is stable under repeated application.
func Slugify(s string) string {
	var sb strings.Builder

	pending := false

	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9')

		if !isAlnum {
			pending = true

			continue
		}

		if pending && sb.Len() > 0 {
			sb.WriteByte('-')
		}

		pending = false

		sb.WriteRune(r)
	}

	return sb.String()
}

// BranchName derives the feature branch name from the
// pull request title and a creation time.
func BranchName(title string, now time.Time) string {
	return fmt.Sprintf(
		"feature/%s-%d",
		Slugify(title),
		now.Unix(),
	)
}

// Publish creates a feature branch from the default
// branch, commits every edit of the change set onto it
// with one commit per file, opens a pull request and
// posts the model's reasoning as a comment on it.
//
// The first failing operation aborts the whole
// sequence. Commits already made stay on the branch,
// there is no rollback.
func Publish(
	ctx context.Context,
	h host.Host,
	cs *respxml.ChangeSet,
	reasoning string,
	now time.Time,
) (host.PullRequest, error) {
	const errCtx = "publishing change set"

	base, err := h.DefaultBranch(ctx)
	if err != nil {
		return host.PullRequest{}, fmt.Errorf(
			"%s: resolving default branch: %w",
			errCtx,
			err,
		)
	}

	branch := BranchName(cs.Title, now)

	if err := h.CreateBranch(
		ctx, branch, base,
	); err != nil {
		return host.PullRequest{}, fmt.Errorf(
			"%s: creating branch %q: %w",
			errCtx,
			branch,
			err,
		)
	}

	slog.Info(
		"created branch",
		"branch", branch,
		"from", base,
	)

	for _, edit := range cs.Edits {
		if err := h.PutFile(
			ctx,
			branch,
			edit.Path,
			edit.Content,
			fmt.Sprintf("Update %s", edit.Path),
		); err != nil {
			return host.PullRequest{}, fmt.Errorf(
				"%s: writing %q: %w",
				errCtx,
				edit.Path,
				err,
			)
		}

		slog.Info(
			"committed file",
			"branch", branch,
			"path", edit.Path,
		)
	}

	pr, err := h.CreatePR(
		ctx,
		branch,
		base,
		cs.Title,
		cs.Body,
	)
	if err != nil {
		return host.PullRequest{}, fmt.Errorf(
			"%s: opening pull request: %w",
			errCtx,
			err,
		)
	}

	slog.Info(
		"opened pull request",
		"number", pr.Number,
		"url", pr.URL,
	)

	if err := h.Comment(
		ctx,
		pr,
		commentBody(reasoning, cs.Edits),
	); err != nil {
		return host.PullRequest{}, fmt.Errorf(
			"%s: commenting on pull request %d: %w",
			errCtx,
			pr.Number,
			err,
		)
	}

	return pr, nil
}

func commentBody(
	reasoning string,
	edits []respxml.FileEdit,
) string {
	var sb strings.Builder

	sb.WriteString("## Model reasoning\n\n")
	sb.WriteString(strings.TrimSpace(reasoning))
	sb.WriteString("\n\n## Modified files\n\n")

	for _, edit := range edits {
		sb.WriteString("- `")
		sb.WriteString(edit.Path)
		sb.WriteString("`\n")
	}

	return sb.String()
}

package fetch

import (
	"context"
	"log/slog"

	"github.com/byte4ever/llm_gitops/prbot/host"
)

// subtreeResult carries the files fetched under one
// subtree, or the cause of its omission. Exactly one
// of the two fields is meaningful.
type subtreeResult struct {
	files []host.File
	cause error
}

// Walk returns every file reachable under dir (empty
// string means the repository root), recursing into
// subdirectories. Entry order follows the host.
//
// Failures are best-effort: an unreadable subtree or
// file is logged and omitted, never fatal.
func Walk(
	ctx context.Context,
	h host.Host,
	dir string,
) []host.File {
	res := walk(ctx, h, dir)
	if res.cause != nil {
		slog.Error(
			"omitting subtree",
			"path", dir,
			"error", res.cause,
		)
	}

	return res.files
}

// walk fetches one subtree. A listing error poisons
// the whole subtree; per-entry errors only omit that
// entry.
func walk(
	ctx context.Context,
	h host.Host,
	dir string,
) subtreeResult {
	entries, err := h.ListDir(ctx, dir)
	if err != nil {
		return subtreeResult{cause: err}
	}

	var files []host.File

	for _, e := range entries {
		switch e.Type {
		case host.TypeFile:
			content, err := h.GetBlob(ctx, e.SHA)
			if err != nil {
				slog.Error(
					"omitting file",
					"path", e.Path,
					"error", err,
				)

				continue
			}

			files = append(files, host.File{
				Path:    e.Path,
				SHA:     e.SHA,
				Content: content,
			})

		case host.TypeDir:
			sub := walk(ctx, h, e.Path)
			if sub.cause != nil {
				slog.Error(
					"omitting subtree",
					"path", e.Path,
					"error", sub.cause,
				)

				continue
			}

			files = append(files, sub.files...)
		}
	}

	return subtreeResult{files: files}
}

package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/byte4ever/llm_gitops/prbot/fetch"
	"github.com/byte4ever/llm_gitops/prbot/generate"
	"github.com/byte4ever/llm_gitops/prbot/host"
	"github.com/byte4ever/llm_gitops/prbot/promptline"
	"github.com/byte4ever/llm_gitops/prbot/publish"
	"github.com/byte4ever/llm_gitops/prbot/respxml"
)

// Generator produces a model reply for a repository
// snapshot and a change request.
type Generator interface {
	Generate(
		ctx context.Context,
		files []host.File,
		request string,
	) (*generate.Result, error)
}

// Config wires the pipeline's collaborators and knobs.
type Config struct {
	// Host is the hosting platform to read from and
	// publish to.
	Host host.Host
	// Generator produces the model reply.
	Generator Generator
	// In supplies the change request, first line
	// only.
	In io.Reader
	// Out receives the interactive prompt and the
	// run summary.
	Out io.Writer
	// Subdir restricts the repository snapshot to a
	// subtree. Empty means the whole repository.
	Subdir string
	// DryRun stops before publishing and writes the
	// decoded change set as JSON instead.
	DryRun bool
	// ArtifactPath is where the dry run artifact
	// goes. Empty writes it to Out.
	ArtifactPath string
	// Now supplies the branch timestamp. Nil means
	// time.Now.
	Now func() time.Time
}

// artifact is the dry run output document.
type artifact struct {
	Branch    string             `json:"branch"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	Edits     []respxml.FileEdit `json:"edits"`
	Reasoning string             `json:"reasoning"`
}

// Run executes one full pipeline pass.
func Run(ctx context.Context, cfg Config) error {
	const errCtx = "running pipeline"

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	fmt.Fprint(cfg.Out, "Change request: ")

	request, err := promptline.Read(cfg.In)
	if err != nil {
		return fmt.Errorf(
			"%s: reading change request: %w",
			errCtx,
			err,
		)
	}

	files := fetch.Walk(ctx, cfg.Host, cfg.Subdir)

	slog.Info(
		"fetched repository",
		"files", len(files),
	)

	result, err := cfg.Generator.Generate(
		ctx, files, request,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	cs, err := respxml.Parse(result.Text)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if cfg.DryRun {
		return writeArtifact(cfg, cs, result.Reasoning, now())
	}

	pr, err := publish.Publish(
		ctx,
		cfg.Host,
		cs,
		result.Reasoning,
		now(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	fmt.Fprintf(
		cfg.Out,
		"Opened pull request #%d: %s\n",
		pr.Number,
		pr.URL,
	)

	return nil
}

func writeArtifact(
	cfg Config,
	cs *respxml.ChangeSet,
	reasoning string,
	now time.Time,
) error {
	const errCtx = "writing dry run artifact"

	doc := artifact{
		Branch:    publish.BranchName(cs.Title, now),
		Title:     cs.Title,
		Body:      cs.Body,
		Edits:     cs.Edits,
		Reasoning: reasoning,
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if cfg.ArtifactPath == "" {
		fmt.Fprintf(cfg.Out, "%s\n", raw)

		return nil
	}

	if err := os.WriteFile(
		cfg.ArtifactPath, raw, 0o600,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"wrote dry run artifact",
		"path", cfg.ArtifactPath,
	)

	return nil
}

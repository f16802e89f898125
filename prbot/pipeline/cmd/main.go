// Command llm_pr turns a one-line change request into
// a pull request. It reads the whole repository
// through the hosting platform's REST API, asks the
// model to apply the requested change, then publishes
// the proposed edits as a feature branch with a pull
// request and posts the model's reasoning as a
// comment.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/byte4ever/llm_gitops/prbot/config"
	"github.com/byte4ever/llm_gitops/prbot/generate"
	"github.com/byte4ever/llm_gitops/prbot/host"
	"github.com/byte4ever/llm_gitops/prbot/host/github"
	"github.com/byte4ever/llm_gitops/prbot/host/gitlab"
	"github.com/byte4ever/llm_gitops/prbot/pipeline"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	const errCtx = "running llm_pr"

	interactive := flag.Bool(
		"interactive", false,
		"Read a change request and open a PR",
	)
	dryRun := flag.Bool(
		"dry_run", false,
		"Decode the reply but skip publishing",
	)
	artifactPath := flag.String(
		"out", "",
		"Dry run artifact path (default stdout)",
	)

	flag.Parse()

	if !*interactive {
		fmt.Fprintln(
			os.Stderr,
			"nothing to do, pass --interactive to "+
				"start a run",
		)
		flag.Usage()

		return nil
	}

	// A .env file is a convenience for local runs,
	// its absence is fine.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	h, err := newHost(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	settings, err := config.LoadModelSettings(
		cfg.ModelSettingsFile,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	gen, err := generate.New(
		cfg.AnthropicAPIKey,
		generate.Settings{
			Model:                settings.Model,
			MaxTokens:            settings.MaxTokens,
			Temperature:          settings.Temperature,
			ThinkingBudgetTokens: settings.ThinkingBudgetTokens,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := pipeline.Run(ctx, pipeline.Config{
		Host:         h,
		Generator:    gen,
		In:           os.Stdin,
		Out:          os.Stdout,
		Subdir:       cfg.RepoSubdir,
		DryRun:       *dryRun,
		ArtifactPath: *artifactPath,
	}); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// newHost creates a host.Host based on the configured
// server name. Pattern: Factory -- selects platform
// implementation at runtime.
func newHost(cfg *config.Config) (host.Host, error) {
	const errCtx = "creating host"

	switch cfg.GitServer {
	case config.ServerGitHub:
		h, err := github.NewProvider(github.Config{
			RepoOwner:      cfg.GitHubRepoOwner,
			Repo:           cfg.GitHubRepo,
			AccessToken:    cfg.GitHubAccessToken,
			EnterpriseHost: cfg.GitHubEnterpriseHost,
		})
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return h, nil

	case config.ServerGitLab:
		h, err := gitlab.NewProvider(gitlab.Config{
			Host:        cfg.GitLabHost,
			Repo:        cfg.GitLabRepo,
			AccessToken: cfg.GitLabAccessToken,
		})
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return h, nil

	default:
		return nil, fmt.Errorf(
			"%s: unknown server %q",
			errCtx,
			cfg.GitServer,
		)
	}
}

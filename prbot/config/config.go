package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Validation errors.
var (
	// ErrMissingAPIKey is returned when
	// ANTHROPIC_API_KEY is unset.
	ErrMissingAPIKey = errors.New(
		"ANTHROPIC_API_KEY is required",
	)
	// ErrMissingRepoOwner is returned when
	// GITHUB_REPO_OWNER is unset.
	ErrMissingRepoOwner = errors.New(
		"GITHUB_REPO_OWNER is required",
	)
	// ErrMissingRepo is returned when the selected
	// platform's repository variable is unset.
	ErrMissingRepo = errors.New(
		"repository name is required",
	)
	// ErrMissingAccessToken is returned when
	// GITLAB_ACCESS_TOKEN is unset.
	ErrMissingAccessToken = errors.New(
		"GITLAB_ACCESS_TOKEN is required",
	)
)

// Git hosting platform selectors for GitServer.
const (
	// ServerGitHub selects the GitHub provider.
	ServerGitHub = "github"
	// ServerGitLab selects the GitLab provider.
	ServerGitLab = "gitlab"
)

// Config is the environment configuration. It is read
// and validated once at startup, before any network
// call.
type Config struct {
	// GitServer selects the hosting platform,
	// "github" or "gitlab".
	GitServer string `env:"GIT_SERVER,default=github"`

	// GitHubRepoOwner is the repository owner on
	// GitHub.
	GitHubRepoOwner string `env:"GITHUB_REPO_OWNER"`
	// GitHubRepo is the repository name on GitHub.
	GitHubRepo string `env:"GITHUB_REPO"`
	// GitHubAccessToken authenticates GitHub calls.
	// Empty means anonymous read access and no
	// publishing.
	GitHubAccessToken string `env:"GITHUB_ACCESS_TOKEN"`
	// GitHubEnterpriseHost points at a GitHub
	// Enterprise instance. Empty means github.com.
	GitHubEnterpriseHost string `env:"GITHUB_ENTERPRISE_HOST"`

	// GitLabHost is the GitLab instance base URL.
	// Empty means https://gitlab.com.
	GitLabHost string `env:"GITLAB_HOST"`
	// GitLabRepo is the project path, e.g.
	// "group/project".
	GitLabRepo string `env:"GITLAB_REPO"`
	// GitLabAccessToken authenticates GitLab calls.
	GitLabAccessToken string `env:"GITLAB_ACCESS_TOKEN"`

	// AnthropicAPIKey authenticates model calls.
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	// RepoSubdir restricts the repository snapshot
	// to a subtree. Empty means the whole
	// repository.
	RepoSubdir string `env:"REPO_SUBDIR"`

	// ModelSettingsFile is an optional YAML overlay
	// for the model settings.
	ModelSettingsFile string `env:"MODEL_SETTINGS_FILE"`
}

// Load reads the configuration from the process
// environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(
	ctx context.Context,
	lookuper envconfig.Lookuper,
) (*Config, error) {
	const errCtx = "loading configuration"

	var cfg Config

	if err := envconfig.ProcessWith(
		ctx,
		&envconfig.Config{
			Target:   &cfg,
			Lookuper: lookuper,
		},
	); err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AnthropicAPIKey == "" {
		return ErrMissingAPIKey
	}

	switch c.GitServer {
	case ServerGitHub:
		if c.GitHubRepoOwner == "" {
			return ErrMissingRepoOwner
		}

		if c.GitHubRepo == "" {
			return fmt.Errorf(
				"GITHUB_REPO: %w", ErrMissingRepo,
			)
		}
	case ServerGitLab:
		if c.GitLabRepo == "" {
			return fmt.Errorf(
				"GITLAB_REPO: %w", ErrMissingRepo,
			)
		}

		if c.GitLabAccessToken == "" {
			return ErrMissingAccessToken
		}
	default:
		return fmt.Errorf(
			"unsupported git server %q",
			c.GitServer,
		)
	}

	return nil
}

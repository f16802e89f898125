package github_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghhost "github.com/byte4ever/llm_gitops/prbot/host/github"
)

func TestNewProvider_valid(t *testing.T) {
	t.Parallel()

	pv, err := ghhost.NewProvider(ghhost.Config{
		RepoOwner:   "org",
		Repo:        "repo",
		AccessToken: "tok",
	})

	require.NoError(t, err)
	assert.NotNil(t, pv)
}

func TestNewProvider_no_token(t *testing.T) {
	t.Parallel()

	// Reads are allowed unauthenticated, so the token
	// is not required at construction time.
	pv, err := ghhost.NewProvider(ghhost.Config{
		RepoOwner: "org",
		Repo:      "repo",
	})

	require.NoError(t, err)
	assert.NotNil(t, pv)
}

func TestNewProvider_missing_owner(t *testing.T) {
	t.Parallel()

	pv, err := ghhost.NewProvider(ghhost.Config{
		Repo:        "repo",
		AccessToken: "tok",
	})

	assert.Nil(t, pv)
	assert.ErrorContains(t, err, "repo owner")
}

func TestNewProvider_missing_repo(t *testing.T) {
	t.Parallel()

	pv, err := ghhost.NewProvider(ghhost.Config{
		RepoOwner:   "org",
		AccessToken: "tok",
	})

	assert.Nil(t, pv)
	assert.ErrorContains(t, err, "repo must be set")
}

func TestNewProvider_enterprise(t *testing.T) {
	t.Parallel()

	pv, err := ghhost.NewProvider(ghhost.Config{
		RepoOwner:      "org",
		Repo:           "repo",
		AccessToken:    "tok",
		EnterpriseHost: "git.corp.example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, pv)
}

package gitlab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	glhost "github.com/byte4ever/llm_gitops/prbot/host/gitlab"
)

func TestNewProvider_valid(t *testing.T) {
	t.Parallel()

	pv, err := glhost.NewProvider(glhost.Config{
		Repo:        "org/project",
		AccessToken: "tok",
	})

	require.NoError(t, err)
	assert.NotNil(t, pv)
}

func TestNewProvider_custom_host(t *testing.T) {
	t.Parallel()

	pv, err := glhost.NewProvider(glhost.Config{
		Host:        "https://gl.corp.example.com",
		Repo:        "org/project",
		AccessToken: "tok",
	})

	require.NoError(t, err)
	assert.NotNil(t, pv)
}

func TestNewProvider_missing_token(t *testing.T) {
	t.Parallel()

	pv, err := glhost.NewProvider(glhost.Config{
		Repo: "org/project",
	})

	assert.Nil(t, pv)
	assert.ErrorContains(t, err, "access token")
}

func TestNewProvider_missing_repo(t *testing.T) {
	t.Parallel()

	pv, err := glhost.NewProvider(glhost.Config{
		AccessToken: "tok",
	})

	assert.Nil(t, pv)
	assert.ErrorContains(t, err, "repo must be set")
}

package generate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/llm_gitops/prbot/generate"
	"github.com/byte4ever/llm_gitops/prbot/host"
)

func TestNew_missing_key(t *testing.T) {
	t.Parallel()

	_, err := generate.New("", generate.Settings{})

	require.Error(t, err)
	assert.ErrorIs(t, err, generate.ErrMissingAPIKey)
}

func TestNew(t *testing.T) {
	t.Parallel()

	g, err := generate.New(
		"sk-test",
		generate.Settings{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 1024,
		},
	)

	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestRenderFiles(t *testing.T) {
	t.Parallel()

	got := generate.RenderFiles([]host.File{
		{Path: "a.go", Content: "package a\n"},
		{Path: "b/b.go", Content: "package b\n"},
	})

	assert.Equal(
		t,
		"a.go:\npackage a\n\n\nb/b.go:\npackage b\n",
		got,
	)
}

func TestRenderFiles_empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, generate.RenderFiles(nil))
}

func TestInstructions(t *testing.T) {
	t.Parallel()

	got := generate.Instructions([]host.File{
		{Path: "main.go", Content: "package main"},
	})

	// The codebase is embedded and the reply
	// envelope is mandated.
	assert.Contains(t, got, "main.go:\npackage main")
	assert.Contains(t, got, "<response>")
	assert.Contains(t, got, "</response>")
	assert.NotContains(t, got, "{{codebase}}")
}

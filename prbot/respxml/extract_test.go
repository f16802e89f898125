package respxml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/llm_gitops/prbot/respxml"
)

func TestExtract_bare_payload(t *testing.T) {
	t.Parallel()

	got, err := respxml.Extract(
		"<response><pullRequest/></response>",
	)

	require.NoError(t, err)
	assert.Equal(
		t, "<response><pullRequest/></response>", got,
	)
}

func TestExtract_surrounding_prose(t *testing.T) {
	t.Parallel()

	text := "Here is my proposal:\n\n" +
		"<response><x/></response>\n\n" +
		"Let me know what you think."

	got, err := respxml.Extract(text)

	require.NoError(t, err)
	assert.Equal(t, "<response><x/></response>", got)
}

func TestExtract_first_block_wins(t *testing.T) {
	t.Parallel()

	text := "<response><a/></response>" +
		"<response><b/></response>"

	got, err := respxml.Extract(text)

	require.NoError(t, err)
	assert.Equal(t, "<response><a/></response>", got)
}

func TestExtract_missing_open(t *testing.T) {
	t.Parallel()

	_, err := respxml.Extract("no payload here</response>")

	assert.ErrorContains(t, err, "<response>")
}

func TestExtract_missing_close(t *testing.T) {
	t.Parallel()

	_, err := respxml.Extract("<response><x/>")

	assert.ErrorContains(t, err, "</response>")
}

func TestExtract_close_before_open(t *testing.T) {
	t.Parallel()

	// The closing delimiter must follow the opening
	// one.
	_, err := respxml.Extract(
		"</response> stray <response>",
	)

	assert.Error(t, err)
}

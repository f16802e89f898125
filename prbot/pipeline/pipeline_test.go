package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/llm_gitops/prbot/generate"
	"github.com/byte4ever/llm_gitops/prbot/host"
	"github.com/byte4ever/llm_gitops/prbot/host/hosttest"
	"github.com/byte4ever/llm_gitops/prbot/pipeline"
)

// fakeGenerator replays a canned reply and records
// what it was asked.
type fakeGenerator struct {
	reply   string
	trace   string
	err     error
	files   []host.File
	request string
}

func (g *fakeGenerator) Generate(
	_ context.Context,
	files []host.File,
	request string,
) (*generate.Result, error) {
	g.files = files
	g.request = request

	if g.err != nil {
		return nil, g.err
	}

	return &generate.Result{
		Text:      g.reply,
		Reasoning: g.trace,
	}, nil
}

func repoFake() *hosttest.Fake {
	return &hosttest.Fake{
		Dirs: map[string][]host.Entry{
			"": {
				{
					Path: "src",
					Type: host.TypeDir,
				},
			},
			"src": {
				{
					Path: "src/main.ts",
					SHA:  "sha1",
					Type: host.TypeFile,
				},
			},
		},
		Blobs: map[string]string{
			"sha1": "console.log('hi');",
		},
	}
}

const reply = `I added a logger module.
<response>
  <pullRequest>
    <title>Add Logging</title>
    <body>Adds a logger.</body>
  </pullRequest>
  <files>
    <file>
      <path>src/log.ts</path>
      <content>export const log = console.log;</content>
    </file>
  </files>
</response>`

func TestRun(t *testing.T) {
	t.Parallel()

	fake := repoFake()
	gen := &fakeGenerator{
		reply: reply,
		trace: "considered several loggers",
	}

	var out bytes.Buffer

	err := pipeline.Run(t.Context(), pipeline.Config{
		Host:      fake,
		Generator: gen,
		In: strings.NewReader(
			"add logging\n",
		),
		Out: &out,
		Now: func() time.Time {
			return time.Unix(1700000000, 0)
		},
	})

	require.NoError(t, err)

	// The model saw the snapshot and the request.
	assert.Equal(t, "add logging", gen.request)
	require.Len(t, gen.files, 1)
	assert.Equal(t, "src/main.ts", gen.files[0].Path)

	// One branch, one commit, one PR, one comment.
	require.Len(t, fake.Branches, 1)
	assert.Regexp(
		t,
		`^feature/add-logging-\d+$`,
		fake.Branches[0],
	)

	require.Len(t, fake.Writes, 1)
	assert.Equal(t, "src/log.ts", fake.Writes[0].Path)
	assert.Equal(
		t, "Update src/log.ts", fake.Writes[0].Message,
	)

	require.Len(t, fake.PRs, 1)
	assert.Equal(t, "Add Logging", fake.PRs[0].Title)

	require.Len(t, fake.Comments, 1)
	assert.Contains(
		t,
		fake.Comments[0],
		"considered several loggers",
	)

	assert.Contains(t, out.String(), "Change request: ")
	assert.Contains(
		t, out.String(), "Opened pull request #1",
	)
}

func TestRun_parse_failure(t *testing.T) {
	t.Parallel()

	fake := repoFake()
	gen := &fakeGenerator{reply: "no envelope here"}

	err := pipeline.Run(t.Context(), pipeline.Config{
		Host:      fake,
		Generator: gen,
		In:        strings.NewReader("do it\n"),
		Out:       &bytes.Buffer{},
	})

	// Nothing is written to the host when the reply
	// cannot be decoded.
	require.Error(t, err)
	assert.Empty(t, fake.Branches)
	assert.Empty(t, fake.Writes)
	assert.Empty(t, fake.PRs)
}

func TestRun_generator_failure(t *testing.T) {
	t.Parallel()

	fake := repoFake()
	gen := &fakeGenerator{err: errors.New("boom")}

	err := pipeline.Run(t.Context(), pipeline.Config{
		Host:      fake,
		Generator: gen,
		In:        strings.NewReader("do it\n"),
		Out:       &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.Empty(t, fake.Branches)
}

func TestRun_empty_request(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: reply}

	err := pipeline.Run(t.Context(), pipeline.Config{
		Host:      repoFake(),
		Generator: gen,
		In:        strings.NewReader(""),
		Out:       &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.Empty(t, gen.request)
}

func TestRun_dry_run_artifact(t *testing.T) {
	t.Parallel()

	fake := repoFake()
	gen := &fakeGenerator{
		reply: reply,
		trace: "trace",
	}

	path := filepath.Join(t.TempDir(), "out.json")

	err := pipeline.Run(t.Context(), pipeline.Config{
		Host:         fake,
		Generator:    gen,
		In:           strings.NewReader("add logging\n"),
		Out:          &bytes.Buffer{},
		DryRun:       true,
		ArtifactPath: path,
		Now: func() time.Time {
			return time.Unix(1700000000, 0)
		},
	})

	require.NoError(t, err)

	// Dry run never touches the host write side.
	assert.Empty(t, fake.Branches)
	assert.Empty(t, fake.Writes)
	assert.Empty(t, fake.PRs)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Branch string `json:"branch"`
		Title  string `json:"title"`
		Edits  []struct {
			Path string `json:"path"`
		} `json:"edits"`
		Reasoning string `json:"reasoning"`
	}

	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(
		t,
		"feature/add-logging-1700000000",
		doc.Branch,
	)
	assert.Equal(t, "Add Logging", doc.Title)
	require.Len(t, doc.Edits, 1)
	assert.Equal(t, "src/log.ts", doc.Edits[0].Path)
	assert.Equal(t, "trace", doc.Reasoning)
}

func TestRun_dry_run_to_out(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: reply}

	var out bytes.Buffer

	err := pipeline.Run(t.Context(), pipeline.Config{
		Host:      repoFake(),
		Generator: gen,
		In:        strings.NewReader("add logging\n"),
		Out:       &out,
		DryRun:    true,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `"src/log.ts"`)
}

func TestRun_subdir(t *testing.T) {
	t.Parallel()

	fake := repoFake()
	gen := &fakeGenerator{reply: reply}

	err := pipeline.Run(t.Context(), pipeline.Config{
		Host:      fake,
		Generator: gen,
		In:        strings.NewReader("add logging\n"),
		Out:       &bytes.Buffer{},
		Subdir:    "src",
		DryRun:    true,
	})

	require.NoError(t, err)
	require.Len(t, gen.files, 1)
	assert.Equal(t, "src/main.ts", gen.files[0].Path)
}

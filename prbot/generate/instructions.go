package generate

import (
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/llm_gitops/prbot/host"
)

// instructionsTemplate frames the conversation: the
// codebase is injected into the system prompt and the
// model must wrap its answer in a fixed XML envelope
// so the reply can be decoded mechanically.
const instructionsTemplate = `You are a software engineer working on the codebase below.

The user will describe a change they want. Apply it and reply with the complete new content of every file you create or modify.

Your reply MUST contain exactly one XML block of this exact shape:

<response>
  <pullRequest>
    <title>short imperative title</title>
    <body>description of the change</body>
  </pullRequest>
  <files>
    <file>
      <path>path/relative/to/repo/root</path>
      <content>full new file content</content>
    </file>
  </files>
</response>

Rules:
- One <file> element per created or modified file.
- <content> holds the entire file, not a diff.
- Escape XML special characters in <content>.
- Do not wrap the block in markdown fences.

Codebase:

{{codebase}}
`

func instructions(files []host.File) string {
	t := fasttemplate.New(
		instructionsTemplate, "{{", "}}",
	)

	return t.ExecuteString(map[string]any{
		"codebase": renderFiles(files),
	})
}

// renderFiles lays the repository out as "path:" then
// the file content, one blank line between files.
func renderFiles(files []host.File) string {
	var sb strings.Builder

	for i, f := range files {
		if i > 0 {
			sb.WriteString("\n\n")
		}

		sb.WriteString(f.Path)
		sb.WriteString(":\n")
		sb.WriteString(f.Content)
	}

	return sb.String()
}

package respxml

import (
	"fmt"
	"strings"
)

const (
	openTag  = "<response>"
	closeTag = "</response>"
)

// Extract locates the first payload region delimited
// by <response> and the first following </response>
// and returns it including the delimiters. Anything
// around the region is ignored; a missing delimiter is
// an error.
func Extract(text string) (string, error) {
	const errCtx = "extracting response payload"

	start := strings.Index(text, openTag)
	if start < 0 {
		return "", fmt.Errorf(
			"%s: missing %s delimiter",
			errCtx, openTag,
		)
	}

	rest := text[start:]

	end := strings.Index(rest, closeTag)
	if end < 0 {
		return "", fmt.Errorf(
			"%s: missing %s delimiter",
			errCtx, closeTag,
		)
	}

	return rest[:end+len(closeTag)], nil
}

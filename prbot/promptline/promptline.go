// Package promptline reads the single free-text change request line
// from an interactive input stream.
package promptline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Read blocks until one line is available on r and
// returns it verbatim without its line terminator.
// A stream that closes with a final unterminated line
// still yields that line; a stream that closes before
// any input is an error. There is no re-prompt: an
// empty line is a valid (empty) change request.
func Read(r io.Reader) (string, error) {
	const errCtx = "reading change request"

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}

		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, nil
}

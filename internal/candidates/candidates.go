// Package candidates reads the selectable lines from an input stream.
package candidates

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Read returns the newline-separated lines of r in order. Empty lines are
// skipped, a trailing CR is stripped and a final line without a newline is
// kept. Empty input gives an empty list.
func Read(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	var lines []string
	for {
		line, err := br.ReadString('\n')
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}

		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read candidates: %w", err)
		}
	}
}

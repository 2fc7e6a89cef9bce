// FILE: lixenwraith/taskrc/parse.go
package taskrc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// sanitize drops everything from the first '#' and trims the remainder.
func sanitize(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// splitSetting splits a sanitized line on its first '='.
func splitSetting(line string) (key, value string, ok bool) {
	left, right, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(left), strings.TrimSpace(right), true
}

// parseResult carries the sealed tree and the lines that were skipped.
type parseResult struct {
	tree      *Tree
	malformed []*MalformedLineError
}

// parseTaskrc reads r to completion and builds a sealed tree.
// Malformed lines are logged and skipped; only read failures are returned.
func parseTaskrc(r io.Reader, path string, logger zerolog.Logger) (*parseResult, error) {
	builder := newTreeBuilder()
	res := &parseResult{}

	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read taskrc '%s': %w", path, readErr)
		}
		if raw == "" && readErr != nil {
			break
		}
		lineNo++

		line := sanitize(raw)
		if line != "" {
			if perr := parseLine(builder, line); perr != nil {
				perr.Path = path
				perr.Line = lineNo
				logger.Warn().
					Str("path", path).
					Int("line", lineNo).
					Str("content", line).
					Err(perr).
					Msg("Error encountered while processing configuration setting")
				res.malformed = append(res.malformed, perr)
			}
		}

		if readErr != nil {
			break
		}
	}

	res.tree = builder.seal()
	return res, nil
}

func parseLine(builder *treeBuilder, line string) *MalformedLineError {
	key, value, ok := splitSetting(line)
	if !ok {
		return &MalformedLineError{Content: line, Reason: "missing '=' separator"}
	}
	builder.insert(key, value)
	return nil
}

package envprofile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MalformedLine describes a source line that was dropped while parsing.
type MalformedLine struct {
	// Number is the 1-based line number.
	Number int

	// Text is the trimmed line content.
	Text string
}

// Parse reads a flat KEY=VALUE document.
//
// Blank lines and lines starting with '#' are ignored. Each remaining line
// is split on the first '='; key and value are trimmed and one pair of
// double quotes around the value is removed; an unbalanced quote is kept
// as part of the value. Lines without '=' or with an empty key are dropped
// without error. '#' inside a value and "${VAR}" are kept literally. Lines
// have no length limit. Later duplicates replace earlier values.
func Parse(r io.Reader) (*KeyMap, error) {
	m, _, err := ParseWithReport(r)
	return m, err
}

// ParseWithReport is Parse that also returns the dropped lines.
func ParseWithReport(r io.Reader) (*KeyMap, []MalformedLine, error) {
	m := NewKeyMap()
	var dropped []MalformedLine

	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, nil, fmt.Errorf("failed to read env source: %w", readErr)
		}
		if raw == "" && readErr != nil {
			break
		}

		lineNo++
		line := strings.TrimSpace(raw)
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line != "" && !strings.HasPrefix(line, "#") {
			key, value, ok := strings.Cut(line, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				dropped = append(dropped, MalformedLine{Number: lineNo, Text: line})
			} else {
				m.Set(key, unquote(strings.TrimSpace(value)))
			}
		}
		if readErr != nil {
			break
		}
	}

	return m, dropped, nil
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

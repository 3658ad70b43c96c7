// basic_loader.go - splits BASIC source text into numbered lines
package main

import (
	"fmt"
	"strconv"
	"strings"
)

// LoadProgramSource parses a full BASIC program listing: one statement
// group per source line, each beginning with its line number. Blank lines
// and lines with no leading number are skipped.
func LoadProgramSource(src string) (*Program, error) {
	pr := NewProgram()
	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		i := 0
		for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
			i++
		}
		if i == 0 {
			return nil, fmt.Errorf("?SYNTAX ERROR: line has no line number: %q", trimmed)
		}
		n, err := strconv.Atoi(trimmed[:i])
		if err != nil {
			return nil, fmt.Errorf("?SYNTAX ERROR: bad line number: %q", trimmed)
		}
		body := strings.TrimSpace(trimmed[i:])
		if err := pr.AddLine(n, body); err != nil {
			return nil, err
		}
	}
	return pr, nil
}

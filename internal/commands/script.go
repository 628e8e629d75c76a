package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RunScript executes r one line at a time. Blank lines and lines starting with '#' are skipped;
// the "cmd " prefix is optional. It stops at the first failing line.
func (r *Registry) RunScript(rd io.Reader) (int, error) {
	sc := bufio.NewScanner(rd)
	n, ran := 0, 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			line = prefix + line
		}
		if _, err := r.Run(line); err != nil {
			return ran, fmt.Errorf("commands: line %d: %w", n, err)
		}
		ran++
	}
	if err := sc.Err(); err != nil {
		return ran, fmt.Errorf("commands: %w", err)
	}
	return ran, nil
}

package decompose

import (
	"regexp"
	"strings"
)

var numberedLine = regexp.MustCompile(`^\d+\.\s+(.*)$`)

// Split separates numbered list lines from the remaining prose.
// Empty step texts are dropped; the prose is returned trimmed.
func Split(text string) (steps []string, rest string) {
	steps = []string{}
	var prose []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := numberedLine.FindStringSubmatch(line); m != nil {
			if step := strings.TrimSpace(m[1]); step != "" {
				steps = append(steps, step)
			}
			continue
		}
		prose = append(prose, line)
	}
	return steps, strings.TrimSpace(strings.Join(prose, "\n"))
}

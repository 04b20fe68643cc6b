// Package flow extracts arrow-flow lines from section text and renders them
// through an external diagram agent.
package flow

import "strings"

// noisePrefixes mark lines that mention a flow without being one.
var noisePrefixes = []string{"diagram", "flow", "legend", "#"}

// ExtractArrowFlow returns the first line of text that looks like an
// "A -> B -> C" step sequence, after trimming surrounding backticks and
// whitespace. Lines starting with a noise prefix are skipped. If no single
// line qualifies but the text contains "->" somewhere, the whole trimmed
// text is returned as a fallback. An empty result means there is nothing
// to diagram.
func ExtractArrowFlow(text string) string {
	if text == "" {
		return ""
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.Trim(line, "` "))
		if !strings.Contains(line, "->") {
			continue
		}
		if hasNoisePrefix(line) {
			continue
		}
		return line
	}
	if strings.Contains(text, "->") {
		return strings.TrimSpace(text)
	}
	return ""
}

func hasNoisePrefix(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range noisePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

package chunker

import "strings"

// Kind classifies a chunk as prose or candidate table.
type Kind string

const (
	KindText  Kind = "text"
	KindTable Kind = "table"
)

// Chunk is a contiguous span of section text tagged as prose or as a
// candidate table region.
type Chunk struct {
	Kind  Kind
	Value string
}

// Split scans section text line by line and produces an ordered sequence of
// chunks. A table region starts at a line containing a pipe whose immediate
// successor also contains a pipe, and extends through consecutive non-blank
// pipe-bearing lines. Everything else is prose, one chunk per line. Blank
// lines are dropped and every chunk value is trimmed; chunks that trim to
// empty are discarded.
func Split(text string) []Chunk {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var chunks []Chunk

	for i := 0; i < len(lines); {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}

		if startsTableRegion(lines, i) {
			j := i
			for j < len(lines) && isTableLine(lines[j]) {
				j++
			}
			value := strings.TrimSpace(strings.Join(lines[i:j], "\n"))
			if value != "" {
				chunks = append(chunks, Chunk{Kind: KindTable, Value: value})
			}
			i = j
			continue
		}

		if value := strings.TrimSpace(line); value != "" {
			chunks = append(chunks, Chunk{Kind: KindText, Value: value})
		}
		i++
	}

	return chunks
}

// startsTableRegion reports whether line i opens a table region: it and the
// immediately following line must both contain a pipe. A lone pipe-bearing
// line is prose.
func startsTableRegion(lines []string, i int) bool {
	if !isTableLine(lines[i]) {
		return false
	}
	return i+1 < len(lines) && isTableLine(lines[i+1])
}

// isTableLine reports whether a line belongs to a table region: non-blank
// and containing at least one pipe.
func isTableLine(line string) bool {
	return strings.TrimSpace(line) != "" && strings.Contains(line, "|")
}

// Package tables turns candidate table text into column names and rows.
//
// Interpretation is a chain of responsibility: each strategy is a pure
// function over the chunk text, tried in priority order from strictest to
// most permissive. The first structurally valid result wins; if none
// matches, the chunk renders as prose.
package tables

import (
	"regexp"
	"strings"
)

// ParsedTable is the result of a successful interpretation. Columns is
// non-empty and every row has exactly len(Columns) cells.
type ParsedTable struct {
	Columns []string
	Rows    [][]string
}

// Interpreter attempts to extract columns and rows from candidate table
// text. It returns nil when the text does not match its recognition rule.
type Interpreter func(text string) *ParsedTable

// Interpreters is the priority-ordered ladder applied by Interpret.
var Interpreters = []Interpreter{
	ParseStrictMarkdown,
	ParseHeaderDivider,
	ParseSimplePipe,
	SniffDelimited,
	ParsePseudoPipe,
}

// Interpret runs the ladder and returns the first structurally valid
// result, or nil if every strategy misses.
func Interpret(text string) *ParsedTable {
	for _, interp := range Interpreters {
		if t := interp(text); t != nil && t.valid() {
			return t
		}
	}
	return nil
}

func (t *ParsedTable) valid() bool {
	if len(t.Columns) == 0 || len(t.Rows) == 0 {
		return false
	}
	for _, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return false
		}
	}
	return true
}

// dividerCellRe matches one divider cell: dashes, colons, whitespace only.
var dividerCellRe = regexp.MustCompile(`^[-:\s]+$`)

// dividerLineRe matches a whole divider line such as "---|---|---" or
// "|:---|---:|", with no requirement for bars at the line edges.
var dividerLineRe = regexp.MustCompile(`^[\s|:-]+$`)

func isDividerLine(line string) bool {
	return dividerLineRe.MatchString(line) && strings.Contains(line, "-")
}

func isDividerRow(cells []string) bool {
	for _, c := range cells {
		if !dividerCellRe.MatchString(c) {
			return false
		}
	}
	return len(cells) > 0
}

// ParseStrictMarkdown handles well-formed markdown tables where every
// non-blank line both starts and ends with a bar. An optional divider row
// in second position is discarded.
func ParseStrictMarkdown(text string) *ParsedTable {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return nil
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
			return nil
		}
		rows = append(rows, trimCells(strings.Split(strings.Trim(line, "|"), "|")))
	}

	if isDividerRow(rows[1]) {
		rows = append(rows[:1], rows[2:]...)
	}

	return tableFrom(rows)
}

// ParseHeaderDivider handles GitHub-style tables whose second line is a
// divider, without requiring bars at the line edges. Subsequent lines
// without a pipe are ignored; divider lines are skipped.
func ParseHeaderDivider(text string) *ParsedTable {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return nil
	}
	if !isDividerLine(lines[1]) {
		return nil
	}

	rows := [][]string{splitCells(lines[0])}
	for _, line := range lines[2:] {
		if isDividerLine(line) || !strings.Contains(line, "|") {
			continue
		}
		rows = append(rows, splitCells(line))
	}

	return tableFrom(rows)
}

// ParseSimplePipe handles pipe tables without a divider: every pipe-bearing,
// non-divider line is a row, the first being the header.
func ParseSimplePipe(text string) *ParsedTable {
	var rows [][]string
	for _, line := range nonBlankLines(text) {
		if !strings.Contains(line, "|") || isDividerLine(line) {
			continue
		}
		rows = append(rows, splitCells(line))
	}
	return tableFrom(rows)
}

var multiSpaceRe = regexp.MustCompile(`[ \t]{2,}`)

// SniffDelimited tries pipe, tab, and runs of two-or-more spaces as the
// column separator, accepting the first delimiter that yields a uniform
// cell count of at least two across every line.
func SniffDelimited(text string) *ParsedTable {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return nil
	}

	splitters := []func(string) []string{
		func(s string) []string { return strings.Split(s, "|") },
		func(s string) []string { return strings.Split(s, "\t") },
		func(s string) []string { return multiSpaceRe.Split(s, -1) },
	}

	for _, split := range splitters {
		rows := make([][]string, 0, len(lines))
		width := -1
		ok := true
		for _, line := range lines {
			cells := trimCells(split(line))
			if width == -1 {
				width = len(cells)
			}
			if len(cells) != width {
				ok = false
				break
			}
			rows = append(rows, cells)
		}
		if ok && width >= 2 {
			return tableFrom(rows)
		}
	}
	return nil
}

// ParsePseudoPipe handles header-plus-rows text delimited by interior pipes
// only. Lines with a bar at either edge belong to the strict markdown case
// and are rejected here.
func ParsePseudoPipe(text string) *ParsedTable {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return nil
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if !strings.Contains(line, "|") {
			return nil
		}
		if strings.HasPrefix(line, "|") || strings.HasSuffix(line, "|") {
			return nil
		}
		rows = append(rows, trimCells(strings.Split(line, "|")))
	}

	return tableFrom(rows)
}

// tableFrom builds a ParsedTable from row cell lists, first row as header.
// Returns nil unless there is a non-empty header, at least one data row,
// and a uniform cell count.
func tableFrom(rows [][]string) *ParsedTable {
	if len(rows) < 2 || len(rows[0]) == 0 {
		return nil
	}
	t := &ParsedTable{Columns: rows[0], Rows: rows[1:]}
	if !t.valid() {
		return nil
	}
	return t
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// splitCells splits a row on pipes, trims each cell, and drops the empty
// edge cells produced by an enclosing bar.
func splitCells(line string) []string {
	cells := trimCells(strings.Split(line, "|"))
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

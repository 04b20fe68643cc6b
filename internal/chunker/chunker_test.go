package chunker

import (
	"strings"
	"testing"
)

func TestSplit_ProseAndTable(t *testing.T) {
	input := "Hello\n\n| A | B |\n|---|---|\n| 1 | 2 |"

	chunks := Split(input)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Kind != KindText || chunks[0].Value != "Hello" {
		t.Errorf("unexpected first chunk: %+v", chunks[0])
	}
	if chunks[1].Kind != KindTable {
		t.Errorf("expected table chunk, got %+v", chunks[1])
	}
	if !strings.Contains(chunks[1].Value, "| 1 | 2 |") {
		t.Errorf("table chunk missing data row: %q", chunks[1].Value)
	}
}

func TestSplit_SinglePipeLineIsProse(t *testing.T) {
	input := "cmd | grep foo\nno pipes here"

	chunks := Split(input)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	for i, c := range chunks {
		if c.Kind != KindText {
			t.Errorf("chunk %d: expected prose, got %q", i, c.Kind)
		}
	}
}

func TestSplit_TableEndsAtBlankOrPipeFreeLine(t *testing.T) {
	input := "| A | B |\n| 1 | 2 |\n\n| C | D |\n| 3 | 4 |\ntrailing prose"

	chunks := Split(input)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Kind != KindTable || chunks[1].Kind != KindTable {
		t.Errorf("expected two table chunks, got %+v", chunks)
	}
	if chunks[2].Kind != KindText || chunks[2].Value != "trailing prose" {
		t.Errorf("unexpected trailing chunk: %+v", chunks[2])
	}
}

func TestSplit_ProseLinesAreIndividualChunks(t *testing.T) {
	input := "first line\nsecond line\n\nthird line"

	chunks := Split(input)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %+v", len(chunks), chunks)
	}
	want := []string{"first line", "second line", "third line"}
	for i, w := range want {
		if chunks[i].Value != w {
			t.Errorf("chunk %d: expected %q, got %q", i, w, chunks[i].Value)
		}
	}
}

// Concatenated chunk values must reproduce the non-blank input lines in
// their original order, modulo surrounding whitespace.
func TestSplit_ReassemblyCoversInput(t *testing.T) {
	inputs := []string{
		"Hello\n\n| A | B |\n|---|---|\n| 1 | 2 |\n\nbye",
		"only prose\nmore prose",
		"a|b\nc|d\ne|f",
		"  padded line  \n\n| x | y |\n| 1 | 2 |",
		"pipe | once\nplain",
	}

	for _, input := range inputs {
		chunks := Split(input)
		var got []string
		for _, c := range chunks {
			for _, line := range strings.Split(c.Value, "\n") {
				got = append(got, strings.TrimSpace(line))
			}
		}

		var want []string
		for _, line := range strings.Split(input, "\n") {
			if s := strings.TrimSpace(line); s != "" {
				want = append(want, s)
			}
		}

		if len(got) != len(want) {
			t.Errorf("input %q: expected %d lines, got %d (%v)", input, len(want), len(got), got)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("input %q: line %d: expected %q, got %q", input, i, want[i], got[i])
			}
		}
	}
}

func TestSplit_Empty(t *testing.T) {
	if chunks := Split(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %+v", chunks)
	}
	if chunks := Split("\n\n   \n"); len(chunks) != 0 {
		t.Errorf("expected no chunks for blank input, got %+v", chunks)
	}
}

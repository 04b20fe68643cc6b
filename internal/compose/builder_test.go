package compose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/specdoc/internal/spec"
)

// recorder captures writer calls as a flat op list for assertions.
type recorder struct {
	ops []string
}

func (r *recorder) AddHeading(text string, level int) {
	r.ops = append(r.ops, fmt.Sprintf("heading[%d]: %s", level, text))
}

func (r *recorder) AddParagraph(text string) {
	r.ops = append(r.ops, "para: "+text)
}

func (r *recorder) AddTable(columns []string, rows [][]string) {
	r.ops = append(r.ops, fmt.Sprintf("table: cols=%v rows=%v", columns, rows))
}

func (r *recorder) AddPicture(data []byte) error {
	r.ops = append(r.ops, fmt.Sprintf("picture: %d bytes", len(data)))
	return nil
}

type stubAgent struct {
	img   []byte
	err   error
	calls int
	lines []string
}

func (s *stubAgent) Render(ctx context.Context, flowLine string) ([]byte, error) {
	s.calls++
	s.lines = append(s.lines, flowLine)
	return s.img, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestBuild_ProseAndTableSection(t *testing.T) {
	payload := &spec.Payload{
		Sections: []spec.Section{{Title: "Overview"}},
		Content: []spec.ContentEntry{
			{SectionName: "Overview", Content: "Hello\n\n| A | B |\n|---|---|\n| 1 | 2 |"},
		},
	}

	rec := &recorder{}
	b := NewBuilder(nil, testLogger(), Options{})
	stats := b.Build(context.Background(), rec, payload)

	want := []string{
		"heading[0]: " + DefaultTitle,
		"heading[1]: 1. Overview",
		"para: Hello",
		"table: cols=[A B] rows=[[1 2]]",
		"para: " + DefaultAttribution,
	}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Errorf("unexpected ops:\n got %v\nwant %v", rec.ops, want)
	}
	if stats.Sections != 1 || stats.Paragraphs != 1 || stats.Tables != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestBuild_MissingContentRendersHeadingOnly(t *testing.T) {
	payload := &spec.Payload{
		Sections: []spec.Section{{Title: "Ghost"}},
	}

	rec := &recorder{}
	NewBuilder(nil, testLogger(), Options{}).Build(context.Background(), rec, payload)

	want := []string{
		"heading[0]: " + DefaultTitle,
		"heading[1]: 1. Ghost",
		"para: " + DefaultAttribution,
	}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Errorf("unexpected ops: %v", rec.ops)
	}
}

func TestBuild_UnparseableTableDegradesToProse(t *testing.T) {
	payload := &spec.Payload{
		Sections: []spec.Section{{Title: "Data"}},
		Content: []spec.ContentEntry{
			{SectionName: "Data", Content: "| A | B |\n| 1 | 2 | 3 |"},
		},
	}

	rec := &recorder{}
	NewBuilder(nil, testLogger(), Options{}).Build(context.Background(), rec, payload)

	var sawTable bool
	var sawRawProse bool
	for _, op := range rec.ops {
		if strings.HasPrefix(op, "table:") {
			sawTable = true
		}
		if strings.HasPrefix(op, "para: | A | B |") {
			sawRawProse = true
		}
	}
	if sawTable {
		t.Error("mismatched table must not render as a table")
	}
	if !sawRawProse {
		t.Errorf("expected the raw chunk as prose, got %v", rec.ops)
	}
}

func TestBuild_FlowDiagramWithImage(t *testing.T) {
	agent := &stubAgent{img: []byte("png")}
	payload := &spec.Payload{
		Sections: []spec.Section{{Title: "Flow Diagram"}},
		Content: []spec.ContentEntry{
			{SectionName: "Flow Diagram", Content: "Start -> Process -> End"},
		},
	}

	rec := &recorder{}
	stats := NewBuilder(agent, testLogger(), Options{}).Build(context.Background(), rec, payload)

	want := []string{
		"heading[0]: " + DefaultTitle,
		"heading[1]: 1. Flow Diagram",
		"picture: 3 bytes",
		"para: Start -> Process -> End",
		"para: " + DefaultAttribution,
	}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Errorf("unexpected ops:\n got %v\nwant %v", rec.ops, want)
	}
	if agent.calls != 1 || agent.lines[0] != "Start -> Process -> End" {
		t.Errorf("unexpected agent calls: %d %v", agent.calls, agent.lines)
	}
	if stats.Diagrams != 1 {
		t.Errorf("expected 1 diagram, got %+v", stats)
	}
}

func TestBuild_FlowDiagramAgentFailureYieldsPlaceholder(t *testing.T) {
	agent := &stubAgent{err: errors.New("boom")}
	payload := &spec.Payload{
		Sections: []spec.Section{{Title: "  flow diagram "}},
		Content: []spec.ContentEntry{
			{SectionName: "Flow Diagram", Content: "A -> B"},
		},
	}

	rec := &recorder{}
	stats := NewBuilder(agent, testLogger(), Options{}).Build(context.Background(), rec, payload)

	want := []string{
		"heading[0]: " + DefaultTitle,
		"heading[1]: 1.   flow diagram ",
		"para: [Flow diagram not available]",
		"para: " + DefaultAttribution,
	}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Errorf("unexpected ops:\n got %v\nwant %v", rec.ops, want)
	}
	if stats.Diagrams != 0 {
		t.Errorf("expected no diagrams, got %+v", stats)
	}
}

func TestBuild_FlowDiagramWithoutAgentYieldsPlaceholder(t *testing.T) {
	payload := &spec.Payload{
		Sections: []spec.Section{{Title: "Flow Diagram"}},
		Content: []spec.ContentEntry{
			{SectionName: "Flow Diagram", Content: "A -> B"},
		},
	}

	rec := &recorder{}
	NewBuilder(nil, testLogger(), Options{}).Build(context.Background(), rec, payload)

	var sawPlaceholder bool
	for _, op := range rec.ops {
		if op == "para: [Flow diagram not available]" {
			sawPlaceholder = true
		}
		if op == "para: A -> B" {
			t.Error("placeholder path must skip chunk processing")
		}
	}
	if !sawPlaceholder {
		t.Errorf("expected placeholder paragraph, got %v", rec.ops)
	}
}

type failingPictureWriter struct {
	recorder
}

func (w *failingPictureWriter) AddPicture(data []byte) error {
	w.ops = append(w.ops, "picture-failed")
	return errors.New("unsupported image")
}

func TestBuild_PictureErrorDegradesToPlaceholder(t *testing.T) {
	agent := &stubAgent{img: []byte("png")}
	payload := &spec.Payload{
		Sections: []spec.Section{{Title: "Flow Diagram"}},
		Content: []spec.ContentEntry{
			{SectionName: "Flow Diagram", Content: "A -> B"},
		},
	}

	rec := &failingPictureWriter{}
	NewBuilder(agent, testLogger(), Options{}).Build(context.Background(), rec, payload)

	var sawPlaceholder bool
	for _, op := range rec.ops {
		if op == "para: [Flow diagram not available]" {
			sawPlaceholder = true
		}
	}
	if !sawPlaceholder {
		t.Errorf("expected placeholder after picture failure, got %v", rec.ops)
	}
}

func TestBuild_SectionNumberingAndOrder(t *testing.T) {
	payload := &spec.Payload{
		Title:    "Custom Title",
		Sections: []spec.Section{{Title: "One"}, {Title: "Two"}, {Title: "Three"}},
	}

	rec := &recorder{}
	NewBuilder(nil, testLogger(), Options{}).Build(context.Background(), rec, payload)

	want := []string{
		"heading[0]: Custom Title",
		"heading[1]: 1. One",
		"heading[1]: 2. Two",
		"heading[1]: 3. Three",
		"para: " + DefaultAttribution,
	}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Errorf("unexpected ops: %v", rec.ops)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	agent := &stubAgent{img: []byte("png")}
	payload := &spec.Payload{
		Sections: []spec.Section{{Title: "Overview"}, {Title: "Flow Diagram"}},
		Content: []spec.ContentEntry{
			{SectionName: "Overview", Content: "Hello\n\n| A | B |\n| 1 | 2 |"},
			{SectionName: "Flow Diagram", Content: "A -> B"},
		},
	}

	b := NewBuilder(agent, testLogger(), Options{})
	first := &recorder{}
	b.Build(context.Background(), first, payload)
	second := &recorder{}
	b.Build(context.Background(), second, payload)

	if !reflect.DeepEqual(first.ops, second.ops) {
		t.Errorf("builds differ:\n first %v\nsecond %v", first.ops, second.ops)
	}
}

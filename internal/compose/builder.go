// Package compose assembles the output document from section content.
//
// The document-object API is an injected Writer so the render backend stays
// substitutable; compose decides only what to emit and in which order.
package compose

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/specdoc/internal/chunker"
	"github.com/dgallion1/specdoc/internal/flow"
	"github.com/dgallion1/specdoc/internal/spec"
	"github.com/dgallion1/specdoc/internal/tables"
)

// Writer is the document-object surface the builder renders into.
type Writer interface {
	AddHeading(text string, level int)
	AddParagraph(text string)
	AddTable(columns []string, rows [][]string)
	AddPicture(data []byte) error
}

const (
	// DefaultTitle is the top-level document heading.
	DefaultTitle = "Technical Specification Document"

	// DefaultAttribution is the fixed trailing paragraph.
	DefaultAttribution = "Document generated by specdoc."

	// flowSectionTitle marks the section that renders as a diagram.
	flowSectionTitle = "flow diagram"

	diagramPlaceholder = "[Flow diagram not available]"
)

// Options tune the fixed parts of the document.
type Options struct {
	Title       string // Top-level heading; DefaultTitle if empty.
	Attribution string // Trailing paragraph; DefaultAttribution if empty.
}

// Stats counts what one build emitted.
type Stats struct {
	Sections   int
	Paragraphs int
	Tables     int
	Diagrams   int
}

// Builder walks the ordered sections once and renders each into the Writer.
// A Builder is safe for concurrent Build calls as long as each call gets
// its own Writer.
type Builder struct {
	agent flow.Agent // nil means no diagram rendering
	log   *slog.Logger
	opts  Options
}

// NewBuilder creates a builder. agent may be nil.
func NewBuilder(agent flow.Agent, log *slog.Logger, opts Options) *Builder {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Attribution == "" {
		opts.Attribution = DefaultAttribution
	}
	if log == nil {
		log = slog.Default()
	}
	return &Builder{agent: agent, log: log, opts: opts}
}

// Build renders the payload into w. It never fails: missing content renders
// an empty section, unparseable tables degrade to prose, and diagram-agent
// errors degrade to a placeholder paragraph.
func (b *Builder) Build(ctx context.Context, w Writer, payload *spec.Payload) Stats {
	var stats Stats

	title := b.opts.Title
	if strings.TrimSpace(payload.Title) != "" {
		title = payload.Title
	}
	w.AddHeading(title, 0)

	for i, section := range payload.Sections {
		w.AddHeading(fmt.Sprintf("%d. %s", i+1, section.Title), 1)
		stats.Sections++

		content, _ := spec.FindSectionContent(payload.Content, section.Title)

		if isFlowSection(section.Title) {
			if !b.renderDiagram(ctx, w, section.Title, content, &stats) {
				// Placeholder path: no chunking for this section.
				continue
			}
		}

		for _, chunk := range chunker.Split(content) {
			switch chunk.Kind {
			case chunker.KindTable:
				if t := tables.Interpret(chunk.Value); t != nil {
					w.AddTable(t.Columns, t.Rows)
					stats.Tables++
					continue
				}
				w.AddParagraph(chunk.Value)
				stats.Paragraphs++
			default:
				w.AddParagraph(chunk.Value)
				stats.Paragraphs++
			}
		}
	}

	w.AddParagraph(b.opts.Attribution)
	return stats
}

// renderDiagram handles the flow-diagram section. It reports whether chunk
// processing should continue for the section: true after a successful
// image, false on the placeholder path.
func (b *Builder) renderDiagram(ctx context.Context, w Writer, title, content string, stats *Stats) bool {
	var img []byte
	if b.agent != nil && content != "" {
		if flowLine := flow.ExtractArrowFlow(content); flowLine != "" {
			var err error
			img, err = b.agent.Render(ctx, flowLine)
			if err != nil {
				b.log.Warn("diagram agent failed", "section", title, "error", err)
				img = nil
			}
		}
	}

	if len(img) == 0 {
		w.AddParagraph(diagramPlaceholder)
		return false
	}

	if err := w.AddPicture(img); err != nil {
		b.log.Warn("embedding diagram failed", "section", title, "error", err)
		w.AddParagraph(diagramPlaceholder)
		return false
	}
	stats.Diagrams++
	return true
}

func isFlowSection(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), flowSectionTitle)
}

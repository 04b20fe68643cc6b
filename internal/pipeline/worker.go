package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/specdoc/internal/compose"
)

// Document is the render target a worker builds into: the compose writer
// surface plus serialization.
type Document interface {
	compose.Writer
	io.WriterTo
}

// DocumentFactory creates a fresh Document per job, keeping builds
// independent of one another.
type DocumentFactory func() Document

// Worker processes a single build job.
type Worker struct {
	builder *compose.Builder
	newDoc  DocumentFactory
	log     *slog.Logger
}

func NewWorker(builder *compose.Builder, newDoc DocumentFactory, log *slog.Logger) *Worker {
	return &Worker{builder: builder, newDoc: newDoc, log: log}
}

// Process runs the full build for a job: compose into a fresh document,
// serialize, and store the result bytes on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	job.SetStatus(StatusBuilding, "composing")
	doc := w.newDoc()
	stats := w.builder.Build(ctx, doc, job.Payload())
	job.SetStats(stats)

	job.SetStatus(StatusBuilding, "serializing")
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		log.Error("serialize failed", "error", err)
		job.AddError(fmt.Sprintf("serialize: %s", err))
		job.SetStatus(StatusFailed, "serializing")
		return
	}

	data := buf.Bytes()
	job.SetResult(data, ContentHashHex(data))
	job.SetStatus(StatusCompleted, "done")
	log.Info("build complete",
		"bytes", len(data),
		"sections", stats.Sections,
		"tables", stats.Tables,
		"diagrams", stats.Diagrams,
	)
}

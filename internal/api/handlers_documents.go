package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/specdoc/internal/pipeline"
	"github.com/dgallion1/specdoc/internal/spec"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// readPayload decodes the request body as a JSON payload, enforcing the
// configured size limit.
func (s *Server) readPayload(w http.ResponseWriter, r *http.Request) (*spec.Payload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxPayloadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	payload, err := spec.DecodePayload(data, spec.FormatJSON)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return payload, true
}

func (s *Server) handleBuildDocument(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.readPayload(w, r)
	if !ok {
		return
	}

	doc := s.newDoc()
	stats := s.builder.Build(r.Context(), doc, payload)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		s.log.Error("serialize failed", "error", err)
		jsonError(w, "failed to serialize document", http.StatusInternalServerError)
		return
	}

	s.log.Info("document built",
		"sections", stats.Sections,
		"tables", stats.Tables,
		"diagrams", stats.Diagrams,
		"bytes", buf.Len(),
	)

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="specification.docx"`)
	w.Header().Set("ETag", `"`+pipeline.ContentHashHex(buf.Bytes())+`"`)
	w.Write(buf.Bytes())
}

func (s *Server) handleBuildDocumentAsync(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.readPayload(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(payload)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":     job.ID,
		"status":     job.Status,
		"poll_url":   fmt.Sprintf("/api/documents/%s/status", job.ID),
		"result_url": fmt.Sprintf("/api/documents/%s/result", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}

func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	switch snap.Status {
	case pipeline.StatusCompleted:
	case pipeline.StatusFailed:
		jsonError(w, "job failed", http.StatusGone)
		return
	default:
		jsonError(w, fmt.Sprintf("job not finished (status %s)", snap.Status), http.StatusConflict)
		return
	}

	data, hash := job.Result()
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="specification.docx"`)
	w.Header().Set("ETag", `"`+hash+`"`)
	w.Write(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/specdoc/internal/compose"
	"github.com/dgallion1/specdoc/internal/preview"
)

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.readPayload(w, r)
	if !ok {
		return
	}

	title := s.cfg.DocumentTitle
	if title == "" {
		title = compose.DefaultTitle
	}

	res, err := preview.Render(payload, title)
	if err != nil {
		s.log.Error("preview failed", "error", err)
		jsonError(w, "failed to render preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

package api

import (
	"encoding/json"
	"net/http"
)

// handleListFormats lists registered document formats.
func (s *Server) handleListFormats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"formats": s.orchestrator.Registry().Formats(),
	})
}

// handleListConverters enumerates registered converters.
func (s *Server) handleListConverters(w http.ResponseWriter, r *http.Request) {
	var out []map[string]string
	for _, c := range s.orchestrator.Registry().Converters() {
		out = append(out, map[string]string{"from": c.From, "to": c.To})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"converters": out})
}

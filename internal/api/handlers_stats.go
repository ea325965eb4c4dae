package api

import "net/http"

func (s *Server) handleLayoutStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "layout stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"layout":      s.stats.Snapshot(),
	})
}

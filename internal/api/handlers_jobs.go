package api

import (
	"net/http"

	"github.com/dgallion1/grafbreak/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
	}
	return job
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.lookupJob(w, r)
	if job == nil {
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleJobResult answers 409 until the job reaches a terminal status.
func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	job := s.lookupJob(w, r)
	if job == nil {
		return
	}
	snap := job.Snapshot()
	if !snap.Status.Done() {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "job not finished",
			"status": snap.Status,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job":        snap,
		"paragraphs": job.Results(),
	})
}

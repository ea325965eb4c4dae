package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgallion1/grafbreak/internal/linebreak"
	"github.com/dgallion1/grafbreak/internal/pipeline"
)

// breakRequest overrides the configured layout options per call.
type breakRequest struct {
	Text          string   `json:"text"`
	TargetWidth   *int     `json:"target_width,omitempty"`
	RatioMax      *float64 `json:"ratio_max,omitempty"`
	HyphenPenalty *int     `json:"hyphen_penalty,omitempty"`
	Marker        *string  `json:"marker,omitempty"`
	RejectUnknown *bool    `json:"reject_unknown,omitempty"`
}

func (s *Server) handleBreak(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req breakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts, msg := s.breakOptions(req)
	if msg != "" {
		jsonError(w, msg, http.StatusBadRequest)
		return
	}

	start := time.Now()
	res, err := linebreak.New(opts).Layout(req.Text)
	if err != nil {
		if s.stats != nil {
			s.stats.RecordFailure()
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": err.Error(),
			"kind":  pipeline.ErrorKind(err),
		})
		return
	}
	if s.stats != nil {
		s.stats.Record(time.Since(start), len(res.Lines))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) breakOptions(req breakRequest) (linebreak.Options, string) {
	opts := s.cfg.BreakOptions()
	if req.TargetWidth != nil {
		if *req.TargetWidth <= 0 {
			return opts, "target_width must be positive"
		}
		opts.TargetWidth = *req.TargetWidth
	}
	if req.RatioMax != nil {
		if *req.RatioMax < 0 {
			return opts, "ratio_max must not be negative"
		}
		opts.RatioMax = *req.RatioMax
	}
	if req.HyphenPenalty != nil {
		opts.HyphenPenalty = *req.HyphenPenalty
	}
	if req.Marker != nil && *req.Marker != "" {
		opts.Marker = *req.Marker
	}
	if req.RejectUnknown != nil {
		opts.RejectUnknown = *req.RejectUnknown
	}
	return opts, ""
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"captions/internal/cueexport"
	"captions/internal/logging"
	"captions/internal/playererr"
	"captions/internal/textutil"
)

type errorResponse struct {
	Error string `json:"error"`
	Phase string `json:"phase,omitempty"`
	Code  int    `json:"code,omitempty"`
}

type cacheEntry struct {
	Digest    string     `json:"digest"`
	Source    string     `json:"source,omitempty"`
	CueCount  int        `json:"cue_count"`
	CreatedAt time.Time  `json:"created_at"`
	LastHitAt *time.Time `json:"last_hit_at,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	format := s.opts.DefaultFormat
	if value := r.URL.Query().Get("format"); value != "" {
		parsed, err := cueexport.ParseFormat(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = parsed
	}
	source := textutil.SanitizeLabel(r.URL.Query().Get("source"), "request")

	if s.opts.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	}
	result, err := s.opts.Loader.LoadReader(r.Context(), r.Body, source)
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Captions-Digest", result.Digest)
	w.Header().Set("X-Captions-Cached", strconv.FormatBool(result.Cached))
	w.Header().Set("X-Correlation-ID", result.CorrelationID)
	w.WriteHeader(http.StatusOK)
	opts := cueexport.Options{FallbackSeconds: s.opts.FallbackSeconds}
	if err := cueexport.Write(w, format, result.Cues, opts); err != nil {
		s.log.Warn("write parse response failed", logging.Error(err))
	}
}

func (s *Server) writeLoadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "document exceeds max size")
		return
	}
	phase, ok := playererr.PhaseOf(err)
	if !ok {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: err.Error(),
		Phase: string(phase),
		Code:  playererr.CodeOf(err),
	})
}

func (s *Server) handleCacheList(w http.ResponseWriter, r *http.Request) {
	if s.opts.Cache == nil {
		writeError(w, http.StatusNotFound, "cue cache disabled")
		return
	}
	entries, err := s.opts.Cache.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := make([]cacheEntry, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, cacheEntry{
			Digest:    entry.Digest,
			Source:    entry.Source,
			CueCount:  entry.CueCount,
			CreatedAt: entry.CreatedAt,
			LastHitAt: entry.LastHitAt,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

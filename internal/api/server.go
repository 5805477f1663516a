// Package api exposes the validation pipeline over HTTP for callers that
// embed promptval as a sidecar instead of a CLI. Each request gets its own
// pipeline run; there is no shared mutable state, so requests parallelize
// freely.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptsec/promptval/internal/report"
	"github.com/promptsec/promptval/internal/validate"
)

// Server serves validation requests.
type Server struct {
	pipeline *validate.Pipeline
}

// New builds a Server around a configured pipeline.
func New(p *validate.Pipeline) *Server {
	return &Server{pipeline: p}
}

// Routes mounts the handlers on a chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/validate", s.handleValidate)
	return r
}

type validateRequest struct {
	Identifier string `json:"identifier"`
	Text       string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if req.Identifier == "" {
		req.Identifier = "request"
	}

	res, err := s.pipeline.Validate(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "validation failed"})
		return
	}

	writeJSON(w, http.StatusOK, report.FromResult(req.Identifier, res))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package api

import (
	"context"
	"net/http"
)

// ReadyDependencies defines the interface for readiness checks.
type ReadyDependencies interface {
	Ready(ctx context.Context) error
}

// ReadyHandler handles readiness requests.
type ReadyHandler struct {
	deps ReadyDependencies
}

// NewReadyHandler creates a new readiness handler.
func NewReadyHandler(deps ReadyDependencies) *ReadyHandler {
	return &ReadyHandler{deps: deps}
}

// HandleReady handles GET /readyz requests.
func (h *ReadyHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Ready(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

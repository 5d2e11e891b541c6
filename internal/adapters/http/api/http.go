// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/questboost/internal/domain/model"
	"github.com/okian/questboost/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// PendingClaims returns the unclaimed wins of a canonical address.
	PendingClaims(ctx context.Context, addr string) ([]model.Win, error)

	// Ready reports whether the backing store answers.
	Ready(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	readyHandler  *ReadyHandler
	statsHandler  *StatsHandler
	claimsHandler *ClaimsHandler
	logger        logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	log := logger.Named("api")
	return &Server{
		healthHandler: NewHealthHandler(),
		readyHandler:  NewReadyHandler(deps),
		statsHandler:  NewStatsHandler(statsProvider),
		claimsHandler: NewClaimsHandler(deps, log),
		logger:        log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.logger))
	}

	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/readyz", "readyz", s.readyHandler.HandleReady)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route(PendingClaimsPath, "pending_claims", s.claimsHandler.HandleGetPendingClaims)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

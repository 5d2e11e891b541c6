package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/questboost/internal/domain/address"
	"github.com/okian/questboost/internal/domain/model"
	"github.com/okian/questboost/internal/domain/pending"
	"github.com/okian/questboost/pkg/logger"
)

// PendingClaimsPath is the route of the pending claims lookup.
const PendingClaimsPath = "/boost/get_pending_claims"

// ClaimsDependencies defines the interface for pending claim lookups.
type ClaimsDependencies interface {
	PendingClaims(ctx context.Context, addr string) ([]model.Win, error)
}

// ClaimsHandler handles pending claim requests.
type ClaimsHandler struct {
	deps   ClaimsDependencies
	logger logger.Logger
}

// NewClaimsHandler creates a new claims handler.
func NewClaimsHandler(deps ClaimsDependencies, log logger.Logger) *ClaimsHandler {
	if log == nil {
		log = logger.Named("api")
	}
	return &ClaimsHandler{deps: deps, logger: log}
}

// HandleGetPendingClaims handles GET /boost/get_pending_claims?addr=<felt> requests.
func (h *ClaimsHandler) HandleGetPendingClaims(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	raw := r.URL.Query().Get("addr")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingAddr)
		return
	}
	addr, err := address.Normalize(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	wins, err := h.deps.PendingClaims(r.Context(), addr)
	switch {
	case err == nil:
	case errors.Is(err, pending.ErrQuery):
		// The cause was logged by the resolver; callers only see the generic message.
		writeError(w, http.StatusInternalServerError, "internal_error", ErrQueryClaims)
		return
	default:
		h.logger.Warn(r.Context(), "pending claims lookup refused",
			logger.String("addr", addr),
			logger.String("requestId", RequestIDFromContext(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusServiceUnavailable, "unavailable", ErrUnavailable)
		return
	}

	if wins == nil {
		wins = []model.Win{}
	}
	writeJSON(w, http.StatusOK, wins)
}

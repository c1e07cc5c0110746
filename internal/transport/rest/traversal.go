package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/pathgraph/internal/domain"
	"github.com/heartmarshall/pathgraph/internal/service/traversal"
	"github.com/heartmarshall/pathgraph/pkg/ctxutil"
)

// traversalService defines the minimal interface needed by TraversalHandler.
type traversalService interface {
	GetState(ctx context.Context, in traversal.Learner) (*domain.Progress, error)
	Options(ctx context.Context, in traversal.Learner) (*traversal.OptionsResult, error)
	Profile(ctx context.Context, in traversal.Learner) (*traversal.ProfileResult, error)
	Traverse(ctx context.Context, in traversal.TraverseInput) (*traversal.TraverseResult, error)
	SetPreference(ctx context.Context, in traversal.SetPreferenceInput) error
	Leaderboard(ctx context.Context, in traversal.LeaderboardInput) ([]domain.LeaderboardEntry, error)
}

// maxBodyBytes bounds request bodies; the largest is a preference value.
const maxBodyBytes = 8 << 10

// TraversalHandler serves the learner-facing engine endpoints.
type TraversalHandler struct {
	svc traversalService
	log *slog.Logger
}

// NewTraversalHandler creates a TraversalHandler.
func NewTraversalHandler(svc traversalService, logger *slog.Logger) *TraversalHandler {
	return &TraversalHandler{svc: svc, log: logger.With("handler", "traversal")}
}

// State handles GET .../users/{user}/state.
func (h *TraversalHandler) State(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFromPath(w, r)
	if !ok {
		return
	}

	p, err := h.svc.GetState(r.Context(), learner)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStateResponse(learner, p))
}

// Options handles GET .../users/{user}/options.
func (h *TraversalHandler) Options(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFromPath(w, r)
	if !ok {
		return
	}

	res, err := h.svc.Options(r.Context(), learner)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOptionsResponse(res))
}

// Profile handles GET .../users/{user}/profile.
func (h *TraversalHandler) Profile(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFromPath(w, r)
	if !ok {
		return
	}

	res, err := h.svc.Profile(r.Context(), learner)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(res))
}

type traverseRequest struct {
	EdgeID int64 `json:"edge_id"`
}

// Traverse handles POST .../users/{user}/traverse. A refused traversal is
// still a 200 with ok=false.
func (h *TraversalHandler) Traverse(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFromPath(w, r)
	if !ok {
		return
	}

	var req traverseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.svc.Traverse(r.Context(), traversal.TraverseInput{Learner: learner, EdgeID: req.EdgeID})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTraverseResponse(res))
}

type preferenceRequest struct {
	Value string `json:"value"`
}

// SetPreference handles PUT .../users/{user}/preferences/{name}.
func (h *TraversalHandler) SetPreference(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFromPath(w, r)
	if !ok {
		return
	}

	var req preferenceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.svc.SetPreference(r.Context(), traversal.SetPreferenceInput{
		Learner: learner,
		Name:    r.PathValue("name"),
		Value:   req.Value,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Leaderboard handles GET .../communities/{community}/leaderboard?limit=N.
func (h *TraversalHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	community, err := strconv.ParseInt(r.PathValue("community"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid community id")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	entries, err := h.svc.Leaderboard(r.Context(), traversal.LeaderboardInput{
		CommunityID: community,
		Project:     r.PathValue("project"),
		Limit:       limit,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaderboardResponse(entries))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// handleError maps service errors to status codes. Anything that is not the
// caller's fault and not broken data is reported as retryable.
func (h *TraversalHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, toValidationResponse(ve))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrCorrupted):
		h.log.ErrorContext(r.Context(), "corrupted data", attrs...)
		writeError(w, http.StatusInternalServerError, "internal server error")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the response.
		writeError(w, http.StatusServiceUnavailable, "try again")
	default:
		h.log.WarnContext(r.Context(), "request failed", attrs...)
		writeError(w, http.StatusServiceUnavailable, "try again")
	}
}

// learnerFromPath reads {project}, {community} and {user}. It writes a 400
// and returns false when an id is not an integer.
func learnerFromPath(w http.ResponseWriter, r *http.Request) (traversal.Learner, bool) {
	community, err := strconv.ParseInt(r.PathValue("community"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid community id")
		return traversal.Learner{}, false
	}
	user, err := strconv.ParseInt(r.PathValue("user"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return traversal.Learner{}, false
	}
	return traversal.Learner{
		UserID:      user,
		CommunityID: community,
		Project:     r.PathValue("project"),
	}, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

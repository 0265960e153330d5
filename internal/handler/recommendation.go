package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/actuallystonmai/group-recommender/internal/domain"
	"github.com/actuallystonmai/group-recommender/internal/model"
)

// GET /users/{userID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userIDs, err := parseUserIDs([]string{chi.URLParam(r, "userID")})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}
	h.recommend(w, r, userIDs)
}

// POST /recommendations
func (h *Handler) PostGroupRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be {\"user_ids\": [...]}")
		return
	}
	userIDs, err := parseUserIDs(req.UserIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	h.recommend(w, r, userIDs)
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, userIDs []domain.UserID) {
	result, err := h.service.Recommend(r.Context(), userIDs)
	if err != nil {
		// Invalid group
		if errors.Is(err, domain.ErrInvalidUserID) {
			writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
			return
		}
		// Request deadline hit, whichever stage noticed it
		if r.Context().Err() != nil {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		// Scoring service failure
		if model.IsScoringServiceError(err) {
			writeError(w, http.StatusServiceUnavailable, "model_unavailable",
				"Recommendation model is temporarily unavailable")
			return
		}
		// Request timeout
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	recs := result.Recommendations
	if recs == nil {
		recs = []domain.ResolvedRecommendation{}
	}
	resp := RecommendationResponse{
		UserIDs:         userIDs,
		Recommendations: recs,
		Metadata: domain.RecommendationMeta{
			RequestID:    result.RequestID,
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			TotalCount:   len(recs),
			WatchedCount: result.WatchedCount,
			NoHistory:    result.NoHistory,
		},
	}
	if result.NoHistory {
		resp.Message = NoHistoryMessage
	}

	writeJSON(w, http.StatusOK, resp)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

// POST /recommendations/batch
func (h *Handler) PostBatchRecommendations(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be {\"groups\": [[...], ...]}")
		return
	}

	groups := make([][]domain.UserID, 0, len(req.Groups))
	for _, raw := range req.Groups {
		ids, err := parseUserIDs(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
			return
		}
		groups = append(groups, ids)
	}

	result, err := h.service.GetBatchRecommendations(r.Context(), groups)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUserID) {
			writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

const maxBodyBytes = 1 << 20

// NoHistoryMessage is shown when a group has nothing to base recommendations on.
const NoHistoryMessage = "Add movies to your watch history to see movies you may like!!"

type Recommender interface {
	Recommend(ctx context.Context, userIDs []domain.UserID) (*domain.RecommendationResult, error)
	GetBatchRecommendations(ctx context.Context, groups [][]domain.UserID) (*domain.BatchResponse, error)
}

type Handler struct {
	service Recommender
}

func NewHandler(svc Recommender) *Handler {
	return &Handler{service: svc}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("[handler] encode response")
	}
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// parseUserIDs validates every id as a UUID and keeps the caller's order.
func parseUserIDs(raw []string) ([]domain.UserID, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: user_ids must not be empty", domain.ErrInvalidUserID)
	}
	ids := make([]domain.UserID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidUserID, s)
		}
		ids = append(ids, domain.UserID(id.String()))
	}
	return ids, nil
}

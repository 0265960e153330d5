package handler

import "github.com/actuallystonmai/group-recommender/internal/domain"

type RecommendationRequest struct {
	UserIDs []string `json:"user_ids"`
}

type BatchRequest struct {
	Groups [][]string `json:"groups"`
}

type RecommendationResponse struct {
	UserIDs         []domain.UserID                 `json:"user_ids"`
	Recommendations []domain.ResolvedRecommendation `json:"recommendations"`
	Message         string                          `json:"message,omitempty"`
	Metadata        domain.RecommendationMeta       `json:"metadata"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

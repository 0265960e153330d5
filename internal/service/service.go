package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/group-recommender/internal/domain"
	"github.com/actuallystonmai/group-recommender/internal/feature"
	"github.com/actuallystonmai/group-recommender/internal/history"
	"github.com/actuallystonmai/group-recommender/internal/match"
	"github.com/actuallystonmai/group-recommender/internal/metrics"
	"github.com/actuallystonmai/group-recommender/internal/model"
	"github.com/actuallystonmai/group-recommender/internal/rating"
)

const (
	maxGroupSize     = 50
	maxBatchGroups   = 20
	batchConcurrency = 4
)

type Catalog interface {
	FetchMetadata(ctx context.Context, itemID domain.ItemID) (*domain.ItemMetadata, error)
	SearchByTitle(ctx context.Context, title string) ([]domain.ItemMetadata, error)
}

type Scorer interface {
	Score(ctx context.Context, input []domain.FeatureInput) ([]domain.Suggestion, error)
}

type Dependencies struct {
	Watched history.WatchedStore
	Ratings rating.RatingStore
	Catalog Catalog
	Scorer  Scorer
}

type Service struct {
	aggregator  *history.Aggregator
	ratings     *rating.Resolver
	catalog     Catalog
	scorer      Scorer
	matcher     *match.Resolver
	concurrency int
}

func NewService(deps Dependencies, matchOpts match.Options, concurrency int) *Service {
	concurrency = max(1, concurrency)
	if matchOpts.Concurrency == 0 {
		matchOpts.Concurrency = concurrency
	}
	return &Service{
		aggregator:  history.NewAggregator(deps.Watched, concurrency),
		ratings:     rating.NewResolver(deps.Ratings, concurrency),
		catalog:     deps.Catalog,
		scorer:      deps.Scorer,
		matcher:     match.NewResolver(deps.Catalog, matchOpts),
		concurrency: concurrency,
	}
}

// Recommend runs the whole pipeline for one group. Item level failures are
// logged and skipped; a scoring failure fails the request with no partial list.
func (s *Service) Recommend(ctx context.Context, userIDs []domain.UserID) (*domain.RecommendationResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	}()

	userIDs = uniqueUsers(userIDs)
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one user id is required", domain.ErrInvalidUserID)
	}
	if len(userIDs) > maxGroupSize {
		return nil, fmt.Errorf("%w: group exceeds %d users", domain.ErrInvalidUserID, maxGroupSize)
	}

	result, err := s.recommend(ctx, userIDs)
	switch {
	case err != nil:
		metrics.RecommendationRequests.WithLabelValues("failed").Inc()
	case result.NoHistory:
		metrics.RecommendationRequests.WithLabelValues("no_history").Inc()
	default:
		metrics.RecommendationRequests.WithLabelValues("success").Inc()
	}
	return result, err
}

func (s *Service) recommend(ctx context.Context, userIDs []domain.UserID) (*domain.RecommendationResult, error) {
	requestID := uuid.NewString()
	logger := log.With().Str("request_id", requestID).Int("group_size", len(userIDs)).Logger()

	watched := s.aggregator.Aggregate(ctx, userIDs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if watched.Len() == 0 {
		logger.Info().Msg("[service] group has no watch history")
		return &domain.RecommendationResult{RequestID: requestID, NoHistory: true}, nil
	}

	features := s.buildFeatures(ctx, watched.Items(), userIDs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(features) == 0 {
		logger.Warn().Int("watched", watched.Len()).Msg("[service] every watched item was excluded, no usable history")
		return &domain.RecommendationResult{RequestID: requestID, WatchedCount: watched.Len(), NoHistory: true}, nil
	}

	suggestions, err := s.scorer.Score(ctx, features)
	if err != nil {
		logger.Error().Err(err).Int("features", len(features)).Msg("[service] scoring failed")
		return nil, fmt.Errorf("score features: %w", err)
	}

	recs := s.matcher.Resolve(ctx, suggestions, watched)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info().
		Int("watched", watched.Len()).
		Int("features", len(features)).
		Int("suggestions", len(suggestions)).
		Int("recommendations", len(recs)).
		Msg("[service] recommendations generated")

	return &domain.RecommendationResult{
		RequestID:       requestID,
		Recommendations: recs,
		WatchedCount:    watched.Len(),
	}, nil
}

// buildFeatures enriches every watched item concurrently and returns the
// feature batch in watched order. It returns only after every item finished.
func (s *Service) buildFeatures(ctx context.Context, items []domain.ItemID, userIDs []domain.UserID) []domain.FeatureInput {
	slots := make([]*domain.FeatureInput, len(items))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, itemID := range items {
		g.Go(func() error {
			meta, err := s.catalog.FetchMetadata(ctx, itemID)
			if err != nil {
				excludeItem(itemID, "catalog_unavailable", err)
				return nil
			}

			groupRating := s.ratings.Resolve(ctx, itemID, userIDs)

			input, err := feature.Build(*meta, groupRating)
			if err != nil {
				excludeItem(itemID, "incomplete_metadata", err)
				return nil
			}
			slots[i] = &input
			return nil
		})
	}
	g.Wait()

	features := make([]domain.FeatureInput, 0, len(slots))
	for _, f := range slots {
		if f != nil {
			features = append(features, *f)
		}
	}
	return features
}

func excludeItem(itemID domain.ItemID, reason string, err error) {
	metrics.ItemsExcluded.WithLabelValues(reason).Inc()
	log.Warn().Err(err).Stringer("item_id", itemID).Str("reason", reason).
		Msg("[service] excluding item from feature batch")
}

func uniqueUsers(userIDs []domain.UserID) []domain.UserID {
	seen := make(map[domain.UserID]struct{}, len(userIDs))
	out := make([]domain.UserID, 0, len(userIDs))
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// GetBatchRecommendations computes recommendations for several groups with a
// bounded worker pool. A failing group does not fail the batch.
func (s *Service) GetBatchRecommendations(ctx context.Context, groups [][]domain.UserID) (*domain.BatchResponse, error) {
	if len(groups) == 0 || len(groups) > maxBatchGroups {
		return nil, fmt.Errorf("%w: batch must contain 1 to %d groups", domain.ErrInvalidUserID, maxBatchGroups)
	}
	start := time.Now()

	results := make([]domain.BatchGroupResult, len(groups))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, group := range groups {
		wg.Add(1)
		go func(idx int, userIDs []domain.UserID) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processGroupForBatch(ctx, userIDs)
		}(i, group)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Results: results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// Generates recommendations for a single group, capturing errors.
func (s *Service) processGroupForBatch(ctx context.Context, userIDs []domain.UserID) domain.BatchGroupResult {
	result, err := s.Recommend(ctx, userIDs)
	if err != nil {
		log.Warn().Err(err).Int("group_size", len(userIDs)).Msg("[service] batch: group failed")
		code, msg := CategorizeError(err)
		if ctx.Err() != nil {
			code, msg = "request_timeout", "request timed out, please try again"
		}
		return domain.BatchGroupResult{
			UserIDs: userIDs,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}

	return domain.BatchGroupResult{
		UserIDs:         userIDs,
		Recommendations: result.Recommendations,
		NoHistory:       result.NoHistory,
		Status:          domain.StatusSuccess,
	}
}

// CategorizeError maps a pipeline error to an API error code and message.
func CategorizeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidUserID):
		return "invalid_parameter", err.Error()
	case model.IsScoringServiceError(err):
		return "model_unavailable", "recommendation model is temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "request_timeout", "request timed out, please try again"
	default:
		return "internal_error", "an unexpected error occurred"
	}
}

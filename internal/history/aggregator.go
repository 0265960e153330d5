// Package history builds the union of a group's watched items.
package history

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/group-recommender/internal/domain"
	"github.com/actuallystonmai/group-recommender/internal/metrics"
)

type WatchedStore interface {
	GetWatched(ctx context.Context, userID domain.UserID) ([]domain.ItemID, error)
}

type Aggregator struct {
	store       WatchedStore
	concurrency int
}

func NewAggregator(store WatchedStore, concurrency int) *Aggregator {
	return &Aggregator{store: store, concurrency: max(1, concurrency)}
}

// Aggregate looks up every user's watched list concurrently and returns the
// deduplicated union. A failed lookup is logged and contributes nothing, so
// the result is empty (never an error) when every lookup fails.
func (a *Aggregator) Aggregate(ctx context.Context, userIDs []domain.UserID) *domain.WatchedSet {
	lists := make([][]domain.ItemID, len(userIDs))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, userID := range userIDs {
		g.Go(func() error {
			watched, err := a.store.GetWatched(ctx, userID)
			if err != nil {
				metrics.HistoryLookupFailures.Inc()
				log.Warn().
					Err(fmt.Errorf("%w: %w", domain.ErrHistoryLookupFailed, err)).
					Str("user_id", string(userID)).
					Msg("[history] watched lookup failed, treating as empty")
				return nil
			}
			lists[i] = watched
			return nil
		})
	}
	g.Wait()

	union := domain.NewWatchedSet()
	for _, watched := range lists {
		for _, id := range watched {
			union.Add(id)
		}
	}
	return union
}

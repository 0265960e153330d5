// Package rating reduces a group's stored ratings for an item to one score.
package rating

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

type RatingStore interface {
	GetRatings(ctx context.Context, userID domain.UserID, itemID domain.ItemID) ([]domain.RatingRecord, error)
}

type Resolver struct {
	store       RatingStore
	concurrency int
}

func NewResolver(store RatingStore, concurrency int) *Resolver {
	return &Resolver{store: store, concurrency: max(1, concurrency)}
}

// Resolve returns the group's representative rating for itemID. Only each
// user's first record counts; a failed lookup counts as no rating.
func (r *Resolver) Resolve(ctx context.Context, itemID domain.ItemID, userIDs []domain.UserID) float64 {
	ratings := make([]*float64, len(userIDs))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, userID := range userIDs {
		g.Go(func() error {
			records, err := r.store.GetRatings(ctx, userID, itemID)
			if err != nil {
				log.Warn().Err(err).
					Str("user_id", string(userID)).
					Stringer("item_id", itemID).
					Msg("[rating] rating lookup failed, treating as unrated")
				return nil
			}
			if len(records) > 0 && records[0].Rating != 0 {
				v := records[0].Rating
				ratings[i] = &v
			}
			return nil
		})
	}
	g.Wait()

	valid := make([]float64, 0, len(ratings))
	for _, v := range ratings {
		if v != nil {
			valid = append(valid, *v)
		}
	}
	return Reduce(valid)
}

// Reduce applies the presumed-neutral policy: no ratings give
// domain.DefaultRating, one rating is used as is, more are averaged.
func Reduce(ratings []float64) float64 {
	switch len(ratings) {
	case 0:
		return domain.DefaultRating
	case 1:
		return ratings[0]
	}
	var sum float64
	for _, v := range ratings {
		sum += v
	}
	return sum / float64(len(ratings))
}

// Package match resolves free-text scoring suggestions to catalog items.
package match

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/group-recommender/internal/config"
	"github.com/actuallystonmai/group-recommender/internal/domain"
	"github.com/actuallystonmai/group-recommender/internal/metrics"
)

type Searcher interface {
	SearchByTitle(ctx context.Context, title string) ([]domain.ItemMetadata, error)
}

type Options struct {
	// Threshold is exclusive: a candidate must score strictly above it.
	Threshold       float64
	MinVoteCount    int
	CandidateWindow int
	Concurrency     int
	Similarity      SimilarityFunc
}

func OptionsFromConfig(cfg config.MatchConfig, concurrency int) Options {
	return Options{
		Threshold:       cfg.SimilarityThreshold,
		MinVoteCount:    cfg.MinVoteCount,
		CandidateWindow: cfg.CandidateWindow,
		Concurrency:     concurrency,
	}
}

type Resolver struct {
	searcher Searcher
	opts     Options
}

func NewResolver(searcher Searcher, opts Options) *Resolver {
	if opts.Similarity == nil {
		opts.Similarity = TitleSimilarity
	}
	opts.CandidateWindow = max(1, opts.CandidateWindow)
	opts.Concurrency = max(1, opts.Concurrency)
	return &Resolver{searcher: searcher, opts: opts}
}

// Resolve looks up every suggestion concurrently. Unresolved suggestions and
// matches already in watched are dropped; the rest keep suggestion order.
func (r *Resolver) Resolve(ctx context.Context, suggestions []domain.Suggestion, watched *domain.WatchedSet) []domain.ResolvedRecommendation {
	slots := make([]*domain.ResolvedRecommendation, len(suggestions))

	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for i, s := range suggestions {
		g.Go(func() error {
			item, ok := r.resolveOne(ctx, s)
			if !ok {
				metrics.Suggestions.WithLabelValues("unresolved").Inc()
				return nil
			}
			if watched.Contains(item.ID) {
				metrics.Suggestions.WithLabelValues("watched").Inc()
				log.Debug().Stringer("item_id", item.ID).Str("movie", s.Movie).
					Msg("[match] dropping already watched suggestion")
				return nil
			}
			metrics.Suggestions.WithLabelValues("resolved").Inc()
			slots[i] = &domain.ResolvedRecommendation{ItemID: item.ID, Item: item}
			return nil
		})
	}
	g.Wait()

	out := make([]domain.ResolvedRecommendation, 0, len(slots))
	for _, rec := range slots {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out
}

func (r *Resolver) resolveOne(ctx context.Context, s domain.Suggestion) (domain.ItemMetadata, bool) {
	candidates, err := r.searcher.SearchByTitle(ctx, s.Movie)
	if err != nil {
		log.Debug().Err(err).Str("movie", s.Movie).Msg("[match] catalog search failed")
		return domain.ItemMetadata{}, false
	}
	item, ok := r.BestMatch(s, candidates)
	if !ok {
		log.Debug().Err(domain.ErrSuggestionUnresolved).Str("movie", s.Movie).Str("year", s.Year).
			Msg("[match] no candidate satisfied match constraints")
	}
	return item, ok
}

// BestMatch returns the first candidate within the window that passes every
// constraint, in catalog ranking order.
func (r *Resolver) BestMatch(s domain.Suggestion, candidates []domain.ItemMetadata) (domain.ItemMetadata, bool) {
	if len(candidates) > r.opts.CandidateWindow {
		candidates = candidates[:r.opts.CandidateWindow]
	}
	for _, c := range candidates {
		if r.accepts(s, c) {
			return c, true
		}
	}
	return domain.ItemMetadata{}, false
}

func (r *Resolver) accepts(s domain.Suggestion, c domain.ItemMetadata) bool {
	if c.PosterPath == "" {
		return false
	}
	if c.VoteCount < r.opts.MinVoteCount {
		return false
	}
	if year := c.ReleaseYearPrefix(); year == "" || year != s.Year {
		return false
	}
	return r.opts.Similarity(c.Title, s.Movie) > r.opts.Threshold
}

package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/group-recommender/internal/domain"
	"github.com/actuallystonmai/group-recommender/internal/metrics"
)

// FetchMetadata loads an item and its credits. The caller decides what to do
// with a failure; nothing is retried here.
func (c *Client) FetchMetadata(ctx context.Context, itemID domain.ItemID) (*domain.ItemMetadata, error) {
	if c.cache != nil {
		cached, found, err := c.cache.Get(ctx, itemID, c.language)
		switch {
		case err != nil:
			metrics.CacheRequests.WithLabelValues("error").Inc()
			log.Warn().Err(err).Stringer("item_id", itemID).Msg("[catalog] cache get error")
		case found:
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.CacheRequests.WithLabelValues("miss").Inc()
		}
	}

	var (
		movie   tmdbMovie
		credits tmdbCredits
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := c.get(gctx, "movie", fmt.Sprintf("/movie/%d", itemID), nil)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &movie); err != nil {
			return fmt.Errorf("%w: decode movie %d: %w", domain.ErrCatalogUnavailable, itemID, err)
		}
		if err := movie.validate(); err != nil {
			return fmt.Errorf("%w: movie %d: %w", domain.ErrCatalogUnavailable, itemID, err)
		}
		return nil
	})
	g.Go(func() error {
		body, err := c.get(gctx, "credits", fmt.Sprintf("/movie/%d/credits", itemID), nil)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &credits); err != nil {
			return fmt.Errorf("%w: decode credits %d: %w", domain.ErrCatalogUnavailable, itemID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meta := movie.toMetadata()
	credits.applyTo(&meta)

	if c.cache != nil {
		if err := c.cache.Set(ctx, &meta, c.language); err != nil {
			log.Warn().Err(err).Stringer("item_id", itemID).Msg("[catalog] cache set error")
		}
	}
	return &meta, nil
}

// SearchByTitle returns the first page of matches in catalog ranking order.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]domain.ItemMetadata, error) {
	query := url.Values{}
	query.Set("query", title)

	body, err := c.get(ctx, "search", "/search/movie", query)
	if err != nil {
		return nil, err
	}

	var result tmdbSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode search %q: %w", domain.ErrCatalogUnavailable, title, err)
	}

	items := make([]domain.ItemMetadata, 0, len(result.Results))
	for _, m := range result.Results {
		items = append(items, m.toMetadata())
	}
	return items, nil
}

// Package catalog is the client for the external movie catalog (TMDB v3).
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/actuallystonmai/group-recommender/internal/breaker"
	"github.com/actuallystonmai/group-recommender/internal/config"
	"github.com/actuallystonmai/group-recommender/internal/domain"
	"github.com/actuallystonmai/group-recommender/internal/metrics"
)

const maxBodyBytes = 4 << 20

// MetadataCache is an optional read-through store for item metadata.
type MetadataCache interface {
	Get(ctx context.Context, itemID domain.ItemID, language string) (*domain.ItemMetadata, bool, error)
	Set(ctx context.Context, meta *domain.ItemMetadata, language string) error
}

type Client struct {
	baseURL    string
	apiKey     string
	language   string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]byte]
	cache      MetadataCache
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithCache(cache MetadataCache) Option {
	return func(c *Client) { c.cache = cache }
}

func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(limit, burst),
		cb:         breaker.New[[]byte]("catalog-api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues one GET with its own timeout. Every failure, including a
// timeout or an open circuit, is reported as domain.ErrCatalogUnavailable.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values) ([]byte, error) {
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}
	reqURL := c.baseURL + path + "?" + query.Encode()

	start := time.Now()
	status := "error"
	defer func() {
		metrics.ExternalRequestDuration.WithLabelValues("catalog", operation, status).Observe(time.Since(start).Seconds())
	}()

	if err := c.limiter.Wait(callCtx); err != nil {
		return nil, fmt.Errorf("%w: %s: rate limiter: %w", domain.ErrCatalogUnavailable, path, err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, breaker.CallerGone(err)
			}
			return nil, err
		}
		defer resp.Body.Close()

		status = strconv.Itoa(resp.StatusCode)
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
			return nil, &breaker.StatusError{StatusCode: resp.StatusCode}
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	})
	if err != nil {
		if breaker.IsOpen(err) {
			log.Warn().Str("path", path).Msg("[catalog] circuit open, request rejected")
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCatalogUnavailable, path, err)
	}
	return body, nil
}

// IsUnavailable reports whether err is a catalog failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrCatalogUnavailable)
}

// Package model is the client for the remote similarity scoring service.
package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/actuallystonmai/group-recommender/internal/breaker"
	"github.com/actuallystonmai/group-recommender/internal/config"
	"github.com/actuallystonmai/group-recommender/internal/domain"
	"github.com/actuallystonmai/group-recommender/internal/metrics"
)

const maxResponseBytes = 8 << 20

type Client struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]domain.Suggestion]
}

func NewClient(cfg config.ScoringConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		url:        cfg.URL,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		cb:         breaker.New[[]domain.Suggestion]("scoring-api"),
	}
}

// ScoringServiceError fails the whole recommendation request. StatusCode is
// 0 when no HTTP response was received.
type ScoringServiceError struct {
	StatusCode int
	Msg        string
	Err        error
}

func (e *ScoringServiceError) Error() string {
	msg := e.Msg
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ScoringServiceError) Unwrap() error { return e.Err }

func (e *ScoringServiceError) Is(target error) bool {
	return target == domain.ErrScoringService
}

func IsScoringServiceError(err error) bool {
	var target *ScoringServiceError
	return errors.As(err, &target)
}

type scoreRequest struct {
	Input []domain.FeatureInput `json:"input"`
}

type scoreResponse struct {
	Results []domain.Suggestion `json:"results"`
}

// Score submits the whole batch in one request and returns the suggestions in
// the service's ranking order. There are no partial results.
func (c *Client) Score(ctx context.Context, input []domain.FeatureInput) ([]domain.Suggestion, error) {
	if input == nil {
		input = []domain.FeatureInput{}
	}
	payload, err := json.Marshal(scoreRequest{Input: input})
	if err != nil {
		return nil, &ScoringServiceError{Msg: "encode scoring request", Err: err}
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	status := "error"
	defer func() {
		metrics.ExternalRequestDuration.WithLabelValues("scoring", "give_recommendations", status).Observe(time.Since(start).Seconds())
	}()

	results, err := c.cb.Execute(func() ([]domain.Suggestion, error) {
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url, bytes.NewReader(payload))
		if err != nil {
			return nil, &ScoringServiceError{Msg: "build scoring request", Err: err}
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			scoreErr := &ScoringServiceError{Msg: "scoring request failed", Err: err}
			if ctx.Err() != nil {
				return nil, breaker.CallerGone(scoreErr)
			}
			return nil, scoreErr
		}
		defer resp.Body.Close()
		status = strconv.Itoa(resp.StatusCode)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
			return nil, &ScoringServiceError{StatusCode: resp.StatusCode, Msg: "scoring service returned an error"}
		}
		if !isJSON(resp.Header.Get("Content-Type")) {
			return nil, &ScoringServiceError{
				StatusCode: resp.StatusCode,
				Msg:        fmt.Sprintf("invalid response format, expected JSON, got %q", resp.Header.Get("Content-Type")),
			}
		}

		var body scoreResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
			return nil, &ScoringServiceError{StatusCode: resp.StatusCode, Msg: "decode scoring response", Err: err}
		}
		return body.Results, nil
	})
	if err != nil {
		if breaker.IsOpen(err) {
			return nil, &ScoringServiceError{Msg: "scoring service circuit open", Err: err}
		}
		if !IsScoringServiceError(err) {
			return nil, &ScoringServiceError{Msg: "scoring request failed", Err: err}
		}
		return nil, err
	}
	return results, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

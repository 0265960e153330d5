// Package breaker builds the circuit breakers that guard calls to the
// catalog and scoring services.
package breaker

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/actuallystonmai/group-recommender/internal/metrics"
)

const (
	minRequests  = 10
	tripRatio    = 0.6
	halfOpenMax  = 3
	countsWindow = time.Minute
	openTimeout  = 30 * time.Second
)

// New returns a breaker that opens when at least 60% of the last minute's
// requests failed, with a minimum of 10 requests.
//
// Client faults (see StatusError) count as successes. Calls abandoned by the
// caller are not counted at all.
func New[T any](name string) *gobreaker.CircuitBreaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: halfOpenMax,
		Interval:    countsWindow,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= tripRatio {
				log.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("breaker", name).Str("from", StateString(from)).Str("to", StateString(to)).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(StateValue(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isClientFault(err)
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, errCallerGone)
		},
	})
}

// errCallerGone is returned by Execute callbacks via CallerGone when the
// request context ended before the remote call finished.
var errCallerGone = errors.New("caller context done")

// CallerGone wraps err so the breaker leaves it out of its counts.
func CallerGone(err error) error {
	return errors.Join(errCallerGone, err)
}

// StatusError is a non-2xx reply from a remote service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// isClientFault reports a 4xx about the request itself, such as a 404 for a
// removed item. 408 and 429 still point at the remote side.
func isClientFault(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return se.StatusCode >= 400 && se.StatusCode < 500
}

// IsOpen reports whether err came from a breaker rejecting the call.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func StateString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func StateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

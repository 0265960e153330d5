package domain

import "errors"

var (
	// ErrHistoryLookupFailed marks a per-user watch history lookup failure.
	ErrHistoryLookupFailed  = errors.New("history lookup failed")
	ErrCatalogUnavailable   = errors.New("catalog unavailable")
	ErrIncompleteMetadata   = errors.New("incomplete metadata")
	ErrScoringService       = errors.New("scoring service error")
	ErrSuggestionUnresolved = errors.New("suggestion unresolved")
	ErrInvalidUserID        = errors.New("invalid user id")
)

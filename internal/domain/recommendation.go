package domain

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// FeatureInput is one entry of the scoring request: the feature text paired
// with the group's resolved rating. It encodes as a two element JSON array.
type FeatureInput struct {
	Text   string
	Rating float64
}

func (f FeatureInput) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{f.Text, f.Rating})
}

type Suggestion struct {
	Movie string `json:"movie"`
	Year  string `json:"year"`
}

// UnmarshalJSON accepts the year as either a string or a number.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var raw struct {
		Movie string          `json:"movie"`
		Year  json.RawMessage `json:"year"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Movie = raw.Movie
	s.Year = ""

	year := bytes.TrimSpace(raw.Year)
	if len(year) == 0 || bytes.Equal(year, []byte("null")) {
		return nil
	}
	if year[0] == '"' {
		return json.Unmarshal(year, &s.Year)
	}
	var n json.Number
	if err := json.Unmarshal(year, &n); err != nil {
		return fmt.Errorf("suggestion year: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		s.Year = strconv.FormatInt(i, 10)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("suggestion year: %w", err)
	}
	s.Year = strconv.FormatInt(int64(f), 10)
	return nil
}

type ResolvedRecommendation struct {
	ItemID ItemID       `json:"id"`
	Item   ItemMetadata `json:"item"`
}

type RecommendationMeta struct {
	RequestID    string `json:"request_id"`
	GeneratedAt  string `json:"generated_at"`
	TotalCount   int    `json:"total_count"`
	WatchedCount int    `json:"watched_count"`
	NoHistory    bool   `json:"no_history"`
}

type RecommendationResult struct {
	RequestID       string
	Recommendations []ResolvedRecommendation
	WatchedCount    int
	// NoHistory is set when the group has no usable watch history.
	NoHistory bool
}

type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

type BatchGroupResult struct {
	UserIDs         []UserID                 `json:"user_ids"`
	Recommendations []ResolvedRecommendation `json:"recommendations,omitempty"`
	NoHistory       bool                     `json:"no_history,omitempty"`
	Status          BatchStatus              `json:"status"`
	Error           string                   `json:"error,omitempty"`
	Message         string                   `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Results  []BatchGroupResult `json:"results"`
	Summary  BatchSummary       `json:"summary"`
	Metadata BatchMeta          `json:"metadata"`
}

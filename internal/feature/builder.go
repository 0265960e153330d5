// Package feature renders item metadata as the text fed to the scoring service.
package feature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

// Build joins title, year, runtime, catalog rating, directors, genres, cast and
// overview with single spaces. List fields are comma joined without spaces.
// The resolved group rating travels next to the text, not inside it.
func Build(meta domain.ItemMetadata, rating float64) (domain.FeatureInput, error) {
	if strings.TrimSpace(meta.Title) == "" {
		return domain.FeatureInput{}, fmt.Errorf("%w: item %d has no title", domain.ErrIncompleteMetadata, meta.ID)
	}
	if meta.ReleaseYear < 1000 || meta.ReleaseYear > 9999 {
		return domain.FeatureInput{}, fmt.Errorf("%w: item %d has no release year", domain.ErrIncompleteMetadata, meta.ID)
	}

	text := strings.Join([]string{
		meta.Title,
		strconv.Itoa(meta.ReleaseYear),
		strconv.Itoa(meta.RuntimeMinutes),
		formatNumber(meta.AverageRating),
		strings.Join(meta.Directors, ","),
		strings.Join(meta.Genres, ","),
		strings.Join(meta.TopCast, ","),
		meta.Overview,
	}, " ")

	return domain.FeatureInput{Text: text, Rating: rating}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

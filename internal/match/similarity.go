package match

import (
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// SimilarityFunc scores two strings on a 0..1 scale.
type SimilarityFunc func(a, b string) float64

var dice = &metrics.SorensenDice{CaseSensitive: false, NgramSize: 2}

// TitleSimilarity is the Sørensen–Dice coefficient over character bigrams,
// ignoring case and whitespace. Strings shorter than two characters only
// match when equal.
func TitleSimilarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == b {
		return 1
	}
	if len([]rune(a)) < 2 || len([]rune(b)) < 2 {
		return 0
	}
	return strutil.Similarity(a, b, dice)
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

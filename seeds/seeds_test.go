package seeds

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDsDeterministic(t *testing.T) {
	a, err := userIDs(rand.New(rand.NewSource(42)), 3)
	require.NoError(t, err)
	b, err := userIDs(rand.New(rand.NewSource(42)), 3)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	for _, id := range a {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}
}

func TestWeightedRatingRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 500 {
		r := weightedRating(rng)
		assert.GreaterOrEqual(t, r, 3.0)
		assert.LessOrEqual(t, r, 10.0)
	}
}

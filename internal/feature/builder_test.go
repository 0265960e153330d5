package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

func inception() domain.ItemMetadata {
	return domain.ItemMetadata{
		ID:             27205,
		Title:          "Inception",
		ReleaseYear:    2010,
		RuntimeMinutes: 148,
		AverageRating:  8.4,
		Directors:      []string{"Christopher Nolan"},
		Genres:         []string{"Action", "Science Fiction", "Adventure"},
		TopCast:        []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Ken Watanabe"},
		Overview:       "Cobb steals secrets.",
	}
}

func TestBuild(t *testing.T) {
	got, err := Build(inception(), 7.5)
	require.NoError(t, err)

	assert.Equal(t,
		"Inception 2010 148 8.4 Christopher Nolan Action,Science Fiction,Adventure "+
			"Leonardo DiCaprio,Joseph Gordon-Levitt,Ken Watanabe Cobb steals secrets.",
		got.Text)
	assert.Equal(t, 7.5, got.Rating)
}

func TestBuildIsDeterministic(t *testing.T) {
	a, err := Build(inception(), 5)
	require.NoError(t, err)
	b, err := Build(inception(), 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildWholeNumbers(t *testing.T) {
	meta := inception()
	meta.AverageRating = 8
	meta.Directors = []string{"Lilly Wachowski", "Lana Wachowski"}

	got, err := Build(meta, 5)
	require.NoError(t, err)
	assert.Contains(t, got.Text, "Inception 2010 148 8 Lilly Wachowski,Lana Wachowski Action")
}

func TestBuildIncompleteMetadata(t *testing.T) {
	meta := inception()
	meta.ReleaseYear = 0
	_, err := Build(meta, 5)
	assert.ErrorIs(t, err, domain.ErrIncompleteMetadata)

	meta = inception()
	meta.Title = " "
	_, err = Build(meta, 5)
	assert.ErrorIs(t, err, domain.ErrIncompleteMetadata)
}

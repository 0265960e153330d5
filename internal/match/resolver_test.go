package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

type fakeSearcher map[string][]domain.ItemMetadata

func (f fakeSearcher) SearchByTitle(_ context.Context, title string) ([]domain.ItemMetadata, error) {
	if title == "fail" {
		return nil, domain.ErrCatalogUnavailable
	}
	return f[title], nil
}

func candidate(id domain.ItemID, title, date string) domain.ItemMetadata {
	return domain.ItemMetadata{
		ID:          id,
		Title:       title,
		ReleaseDate: date,
		ReleaseYear: domain.ParseReleaseYear(date),
		PosterPath:  "/poster.jpg",
		VoteCount:   10,
	}
}

func defaultOptions() Options {
	return Options{Threshold: 0.9, MinVoteCount: 1, CandidateWindow: 3, Concurrency: 4}
}

func TestBestMatchCaseInsensitive(t *testing.T) {
	r := NewResolver(fakeSearcher{}, defaultOptions())

	got, ok := r.BestMatch(domain.Suggestion{Movie: "inception", Year: "2010"},
		[]domain.ItemMetadata{candidate(27205, "Inception", "2010-07-15")})

	require.True(t, ok)
	assert.Equal(t, domain.ItemID(27205), got.ID)
}

func TestBestMatchThresholdIsExclusive(t *testing.T) {
	opts := defaultOptions()
	opts.Similarity = func(a, b string) float64 { return 0.85 }
	r := NewResolver(fakeSearcher{}, opts)

	_, ok := r.BestMatch(domain.Suggestion{Movie: "Inception", Year: "2010"},
		[]domain.ItemMetadata{candidate(27205, "Inception", "2010-07-15")})
	assert.False(t, ok)

	opts.Similarity = func(a, b string) float64 { return 0.9 }
	r = NewResolver(fakeSearcher{}, opts)
	_, ok = r.BestMatch(domain.Suggestion{Movie: "Inception", Year: "2010"},
		[]domain.ItemMetadata{candidate(27205, "Inception", "2010-07-15")})
	assert.False(t, ok)
}

func TestBestMatchConstraints(t *testing.T) {
	r := NewResolver(fakeSearcher{}, defaultOptions())
	s := domain.Suggestion{Movie: "Dune", Year: "2021"}

	noPoster := candidate(1, "Dune", "2021-09-15")
	noPoster.PosterPath = ""
	noVotes := candidate(2, "Dune", "2021-09-15")
	noVotes.VoteCount = 0
	wrongYear := candidate(3, "Dune", "1984-12-14")
	noDate := candidate(4, "Dune", "")
	otherTitle := candidate(5, "Dune: Part Two", "2021-01-01")

	_, ok := r.BestMatch(s, []domain.ItemMetadata{noPoster, noVotes, wrongYear})
	assert.False(t, ok)
	_, ok = r.BestMatch(s, []domain.ItemMetadata{noDate, otherTitle})
	assert.False(t, ok)
}

func TestBestMatchFirstThreeOnly(t *testing.T) {
	r := NewResolver(fakeSearcher{}, defaultOptions())
	s := domain.Suggestion{Movie: "Dune", Year: "2021"}

	candidates := []domain.ItemMetadata{
		candidate(1, "Dune", "1984-12-14"),
		candidate(2, "Dune", "2000-12-03"),
		candidate(3, "Dune World", "2021-01-01"),
		candidate(438631, "Dune", "2021-09-15"),
	}
	_, ok := r.BestMatch(s, candidates)
	assert.False(t, ok)

	candidates[1], candidates[3] = candidates[3], candidates[1]
	got, ok := r.BestMatch(s, candidates)
	require.True(t, ok)
	assert.Equal(t, domain.ItemID(438631), got.ID)
}

func TestBestMatchPrefersRankingOrder(t *testing.T) {
	r := NewResolver(fakeSearcher{}, defaultOptions())
	got, ok := r.BestMatch(domain.Suggestion{Movie: "Heat", Year: "1995"}, []domain.ItemMetadata{
		candidate(949, "Heat", "1995-12-15"),
		candidate(111, "heat", "1995-01-01"),
	})
	require.True(t, ok)
	assert.Equal(t, domain.ItemID(949), got.ID)
}

func TestResolve(t *testing.T) {
	searcher := fakeSearcher{
		"Dune":    {candidate(438631, "Dune", "2021-09-15")},
		"Arrival": {candidate(329865, "Arrival", "2016-11-10")},
		"Nothing": {candidate(9, "Something Else", "2016-01-01")},
		"Alien":   {candidate(348, "Alien", "1979-05-25")},
	}
	r := NewResolver(searcher, defaultOptions())

	got := r.Resolve(context.Background(), []domain.Suggestion{
		{Movie: "Nothing", Year: "2016"},
		{Movie: "Arrival", Year: "2016"},
		{Movie: "fail", Year: "2000"},
		{Movie: "Alien", Year: "1979"},
		{Movie: "Dune", Year: "2021"},
	}, domain.NewWatchedSet(348))

	require.Len(t, got, 2)
	assert.Equal(t, domain.ItemID(329865), got[0].ItemID)
	assert.Equal(t, domain.ItemID(438631), got[1].ItemID)
	assert.Equal(t, "Dune", got[1].Item.Title)
}

func TestResolveExcludesWatched(t *testing.T) {
	searcher := fakeSearcher{"Dune": {candidate(438631, "Dune", "2021-09-15")}}
	r := NewResolver(searcher, defaultOptions())

	got := r.Resolve(context.Background(),
		[]domain.Suggestion{{Movie: "Dune", Year: "2021"}},
		domain.NewWatchedSet(1, 2, 3, 438631))

	assert.Empty(t, got)
}

func TestResolveEmpty(t *testing.T) {
	r := NewResolver(fakeSearcher{}, defaultOptions())
	got := r.Resolve(context.Background(), nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTitleSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, TitleSimilarity("Inception", "inception"))
	assert.Equal(t, 1.0, TitleSimilarity("The Matrix", "thematrix"))
	assert.Equal(t, 0.0, TitleSimilarity("a", "b"))
	assert.Less(t, TitleSimilarity("Dune", "Dune: Part Two"), 0.9)
	assert.Less(t, TitleSimilarity("Alien", "Aliens"), 1.0)
	assert.Greater(t, TitleSimilarity("Alien", "Aliens"), 0.5)
}

func TestSearchErrorIsNotFatal(t *testing.T) {
	r := NewResolver(fakeSearcher{}, defaultOptions())
	_, ok := r.resolveOne(context.Background(), domain.Suggestion{Movie: "fail"})
	assert.False(t, ok)
}

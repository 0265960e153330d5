package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

type fakeStore struct {
	watched map[domain.UserID][]domain.ItemID
	failing map[domain.UserID]bool
}

func (f fakeStore) GetWatched(_ context.Context, userID domain.UserID) ([]domain.ItemID, error) {
	if f.failing[userID] {
		return nil, errors.New("connection reset")
	}
	return f.watched[userID], nil
}

func TestAggregateUnion(t *testing.T) {
	store := fakeStore{watched: map[domain.UserID][]domain.ItemID{
		"a": {1, 2},
		"b": {2, 3},
	}}

	union := NewAggregator(store, 4).Aggregate(context.Background(), []domain.UserID{"a", "b"})

	assert.ElementsMatch(t, []domain.ItemID{1, 2, 3}, union.Items())
	assert.True(t, union.Contains(2))
	assert.False(t, union.Contains(4))
}

func TestAggregateNoDuplicates(t *testing.T) {
	store := fakeStore{watched: map[domain.UserID][]domain.ItemID{
		"a": {5, 5, 6, 7},
		"b": {7, 6, 5},
		"c": {8, 5},
	}}

	union := NewAggregator(store, 2).Aggregate(context.Background(), []domain.UserID{"a", "b", "c"})

	seen := map[domain.ItemID]int{}
	for _, id := range union.Items() {
		seen[id]++
	}
	assert.Equal(t, map[domain.ItemID]int{5: 1, 6: 1, 7: 1, 8: 1}, seen)
}

func TestAggregatePartialFailure(t *testing.T) {
	store := fakeStore{
		watched: map[domain.UserID][]domain.ItemID{"a": {1, 2}, "b": {3}},
		failing: map[domain.UserID]bool{"b": true},
	}

	union := NewAggregator(store, 4).Aggregate(context.Background(), []domain.UserID{"a", "b"})

	assert.ElementsMatch(t, []domain.ItemID{1, 2}, union.Items())
}

func TestAggregateAllFailOrEmpty(t *testing.T) {
	store := fakeStore{failing: map[domain.UserID]bool{"a": true, "b": true}}
	union := NewAggregator(store, 4).Aggregate(context.Background(), []domain.UserID{"a", "b"})
	assert.Zero(t, union.Len())

	// a user without any row contributes nothing
	union = NewAggregator(fakeStore{}, 4).Aggregate(context.Background(), []domain.UserID{"nobody"})
	assert.Zero(t, union.Len())
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/actuallystonmai/group-recommender/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Get watched item ids for one user. A user without a row or with a NULL
// list has watched nothing.
func (r *Repository) GetWatched(ctx context.Context, userID domain.UserID) ([]domain.ItemID, error) {
	var watched []int64
	err := r.pool.QueryRow(ctx,
		`SELECT watched FROM "user" WHERE id = $1`,
		string(userID),
	).Scan(&watched)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query watched for user %s: %w", userID, err)
	}

	items := make([]domain.ItemID, 0, len(watched))
	for _, id := range watched {
		items = append(items, domain.ItemID(id))
	}
	return items, nil
}

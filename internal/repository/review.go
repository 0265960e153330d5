package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

// Get a user's ratings for one item, oldest first. NULL ratings read as 0.
func (r *Repository) GetRatings(ctx context.Context, userID domain.UserID, itemID domain.ItemID) ([]domain.RatingRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id::text, movie_id, COALESCE(rating, 0)::float8
		FROM review
		WHERE user_id = $1 AND movie_id = $2
		ORDER BY created_at, id`,
		string(userID), int64(itemID),
	)
	if err != nil {
		return nil, fmt.Errorf("query ratings for user %s item %d: %w", userID, itemID, err)
	}
	defer rows.Close()

	var records []domain.RatingRecord
	for rows.Next() {
		var (
			rec     domain.RatingRecord
			uid     string
			movieID int64
		)
		if err := rows.Scan(&uid, &movieID, &rec.Rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		rec.UserID = domain.UserID(uid)
		rec.ItemID = domain.ItemID(movieID)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return records, nil
}

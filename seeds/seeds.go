// Package seeds fills a development database with demo users, watch lists
// and reviews. The tables must already exist.
package seeds

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// TMDB ids of well known films, so catalog lookups resolve against the real API.
var movieIDs = []int64{
	27205,  // Inception
	157336, // Interstellar
	438631, // Dune
	329865, // Arrival
	78,     // Blade Runner
	335984, // Blade Runner 2049
	348,    // Alien
	603,    // The Matrix
	680,    // Pulp Fiction
	155,    // The Dark Knight
	13,     // Forrest Gump
	278,    // The Shawshank Redemption
	238,    // The Godfather
	496243, // Parasite
	244786, // Whiplash
	949,    // Heat
	807,    // Se7en
	11324,  // Shutter Island
	120467, // The Grand Budapest Hotel
	137113, // Edge of Tomorrow
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	log.Info().Msg("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `TRUNCATE review, "user" RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	users, err := userIDs(rng, 10)
	if err != nil {
		return fmt.Errorf("generate user ids: %w", err)
	}

	log.Info().Int("users", len(users)).Msg("[seed] inserting users with watch lists")
	watched, err := seedUsers(ctx, pool, rng, users)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info().Msg("[seed] inserting reviews")
	if err := seedReviews(ctx, pool, rng, watched); err != nil {
		return fmt.Errorf("seed reviews: %w", err)
	}

	log.Info().Msg("[seed] seeding complete")
	return nil
}

func userIDs(rng *rand.Rand, n int) ([]string, error) {
	ids := make([]string, 0, n)
	for range n {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id.String())
	}
	return ids, nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, users []string) (map[string][]int64, error) {
	watched := make(map[string][]int64, len(users))
	rows := []string{}
	args := []any{}

	for _, id := range users {
		// a couple of users start with an empty history
		n := rng.Intn(8)
		list := make([]int64, 0, n)
		for _, idx := range rng.Perm(len(movieIDs))[:n] {
			list = append(list, movieIDs[idx])
		}
		watched[id] = list

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, id, list)
	}

	query := `INSERT INTO "user" (id, watched) VALUES ` + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return watched, err
}

func seedReviews(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, watched map[string][]int64) error {
	rows := []string{}
	args := []any{}

	for userID, list := range watched {
		for _, movieID := range list {
			// not every watched film gets a review
			if rng.Float64() < 0.4 {
				continue
			}
			rating := weightedRating(rng)
			createdAt := time.Now().AddDate(0, 0, -rng.Intn(180))

			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
			args = append(args, userID, movieID, rating, createdAt)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO review (user_id, movie_id, rating, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// weightedRating skews toward favourable ratings on a 1..10 scale.
func weightedRating(rng *rand.Rand) float64 {
	ratings := []float64{3, 5, 6, 7, 8, 9, 10}
	weights := []float64{0.05, 0.1, 0.15, 0.25, 0.25, 0.15, 0.05}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return ratings[i]
		}
	}
	return ratings[len(ratings)-1]
}

// Package repository reads watch history and ratings from PostgreSQL.
//
// Expected tables (owned and migrated elsewhere):
//
//	"user"  (id uuid primary key, watched bigint[])
//	review  (id bigserial, user_id uuid, movie_id bigint, rating numeric, created_at timestamptz)
package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/neubri/threads-clone/internal/domain"
)

type FollowRepo struct {
	db DB
}

func NewFollowRepo(db DB) *FollowRepo {
	return &FollowRepo{db: db}
}

func (r *FollowRepo) Create(ctx context.Context, f *domain.Follow) error {
	query := `
		INSERT INTO follows (id, follower_id, following_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, f.ID, f.FollowerID, f.FollowingID, f.CreatedAt, f.UpdatedAt)
	return translateError(err)
}

func (r *FollowRepo) Get(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error) {
	query := `
		SELECT id, follower_id, following_id, created_at, updated_at
		FROM follows
		WHERE follower_id = $1 AND following_id = $2`
	var f domain.Follow
	err := r.db.QueryRow(ctx, query, followerID, followingID).Scan(
		&f.ID, &f.FollowerID, &f.FollowingID, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

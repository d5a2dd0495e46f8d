package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/domain"
)

// Lookups return (nil, nil) when the row does not exist.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SearchByUsername(ctx context.Context, query string) ([]domain.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	ListWithAuthor(ctx context.Context) ([]domain.Post, error)
	GetByIDWithAuthor(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	// AppendComment and AppendLike report false when the post does not exist.
	AppendComment(ctx context.Context, postID uuid.UUID, comment domain.Comment) (bool, error)
	AppendLike(ctx context.Context, postID uuid.UUID, like domain.Like) (bool, error)
}

type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Get(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error)
}

// ErrDuplicate is matched by every DuplicateError.
var ErrDuplicate = errors.New("duplicate key")

// DuplicateError reports a unique constraint rejected a write. Field names
// the logical key: "email", "username" or "follow".
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

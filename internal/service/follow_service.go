package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// FollowUser records that followerID follows followingID.
func (s *FollowService) FollowUser(ctx context.Context, rawFollowerID, rawFollowingID string) (*domain.Follow, error) {
	followingID, err := parseID(rawFollowingID, "FollowingId")
	if err != nil {
		return nil, err
	}
	followerID, err := parseID(rawFollowerID, "FollowerId")
	if err != nil {
		return nil, err
	}

	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.followRepo.Get(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyFollowing
	}

	now := time.Now()
	follow := &domain.Follow{
		ID:          uuid.New(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.followRepo.Create(ctx, follow); err != nil {
		// a concurrent identical request won the insert
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFollowing
		}
		return nil, fmt.Errorf("creating follow: %w", err)
	}

	return follow, nil
}

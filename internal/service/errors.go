package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/domain"
)

var (
	ErrEmailTaken       = domain.NewConflictError("Email is already exist")
	ErrUsernameTaken    = domain.NewConflictError("Username is already exist")
	ErrInvalidCreds     = domain.NewAuthenticationError("Invalid email/password")
	ErrUserNotFound     = domain.NewNotFoundError("User not found")
	ErrPostNotFound     = domain.NewNotFoundError("Post not found")
	ErrSelfFollow       = domain.NewSelfFollowError("Can't follow yourself")
	ErrAlreadyFollowing = domain.NewConflictError("You already follow this user")
)

// parseID validates a client-supplied id. field names the argument in messages.
func parseID(raw, field string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError(field + " is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("Invalid " + field)
	}
	return id, nil
}

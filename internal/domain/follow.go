package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	ID          uuid.UUID `json:"_id"`
	FollowerID  uuid.UUID `json:"followerId"`
	FollowingID uuid.UUID `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

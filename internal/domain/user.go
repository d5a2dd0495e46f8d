package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the public projection of a user used wherever a user is
// joined into another read model (post author, follower lists).
type UserSummary struct {
	ID       uuid.UUID `json:"_id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// UserProfile is a user together with both directions of the follow graph.
type UserProfile struct {
	ID        uuid.UUID     `json:"_id"`
	Name      string        `json:"name"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Followers []UserSummary `json:"followers"`
	Following []UserSummary `json:"following"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
	}
}

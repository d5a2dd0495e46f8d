package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"_id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	ImgURL    *string   `json:"imgUrl,omitempty"`
	AuthorID  uuid.UUID `json:"authorId"`
	Comments  []Comment `json:"comments"`
	Likes     []Like    `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// Joined fields
	AuthorDetails *UserSummary `json:"authorDetails,omitempty"`
}

// Comment and Like carry the author's username rather than a reference;
// usernames are immutable so the copy never goes stale.
type Comment struct {
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Like struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

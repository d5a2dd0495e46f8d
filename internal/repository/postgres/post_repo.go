package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/neubri/threads-clone/internal/domain"
)

// postWithAuthor selects a post and LEFT JOINs its author's public fields;
// a post whose author row is missing keeps a NULL author.
const postWithAuthor = `
	SELECT p.id, p.content, p.tags, p.img_url, p.author_id, p.comments, p.likes,
		p.created_at, p.updated_at,
		u.id, u.name, u.username, u.email
	FROM posts p
	LEFT JOIN users u ON u.id = p.author_id`

type PostRepo struct {
	db DB
}

func NewPostRepo(db DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, content, tags, img_url, author_id, comments, likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, '[]'::jsonb, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Content, post.Tags, post.ImgURL, post.AuthorID,
		post.CreatedAt, post.UpdatedAt,
	)
	return err
}

// ListWithAuthor returns every post, newest first.
func (r *PostRepo) ListWithAuthor(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, postWithAuthor+" ORDER BY p.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (r *PostRepo) GetByIDWithAuthor(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := scanPost(r.db.QueryRow(ctx, postWithAuthor+" WHERE p.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return post, err
}

func (r *PostRepo) AppendComment(ctx context.Context, postID uuid.UUID, comment domain.Comment) (bool, error) {
	return r.appendTo(ctx, "comments", postID, comment, comment.UpdatedAt)
}

func (r *PostRepo) AppendLike(ctx context.Context, postID uuid.UUID, like domain.Like) (bool, error) {
	return r.appendTo(ctx, "likes", postID, like, like.UpdatedAt)
}

// appendTo pushes item onto a JSONB array column in a single statement so
// concurrent appends never overwrite each other.
func (r *PostRepo) appendTo(ctx context.Context, column string, postID uuid.UUID, item any, at time.Time) (bool, error) {
	payload, err := json.Marshal([]any{item})
	if err != nil {
		return false, fmt.Errorf("encoding %s entry: %w", column, err)
	}

	query := fmt.Sprintf(`UPDATE posts SET %[1]s = %[1]s || $1::jsonb, updated_at = $2 WHERE id = $3`, column)
	tag, err := r.db.Exec(ctx, query, string(payload), at, postID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		p              domain.Post
		authorID       *uuid.UUID
		authorName     *string
		authorUsername *string
		authorEmail    *string
	)
	if err := row.Scan(
		&p.ID, &p.Content, &p.Tags, &p.ImgURL, &p.AuthorID, &p.Comments, &p.Likes,
		&p.CreatedAt, &p.UpdatedAt,
		&authorID, &authorName, &authorUsername, &authorEmail,
	); err != nil {
		return nil, err
	}

	if authorID != nil {
		p.AuthorDetails = &domain.UserSummary{
			ID:       *authorID,
			Name:     deref(authorName),
			Username: deref(authorUsername),
			Email:    deref(authorEmail),
		}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	if p.Likes == nil {
		p.Likes = []domain.Like{}
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/logging"
	"github.com/neubri/threads-clone/internal/metrics"
	"github.com/neubri/threads-clone/internal/repository"
	"github.com/neubri/threads-clone/pkg/validator"
)

// FeedCache stores the enriched feed returned by GetPosts. Get reports a
// generation that Set must match, so a write-back never outlives an
// Invalidate issued after the read.
type FeedCache interface {
	Get(ctx context.Context) (posts []domain.Post, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, posts []domain.Post) (stored bool, err error)
	Invalidate(ctx context.Context) error
}

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	feed     FeedCache
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	feed FeedCache,
	logger *logging.Logger,
	m *metrics.Metrics,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		feed:     feed,
		logger:   logger,
		metrics:  m,
	}
}

type CreatePostInput struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	ImgURL  *string  `json:"imgUrl"`
}

// CreatePost stores a post by authorID and drops the cached feed before returning.
func (s *PostService) CreatePost(ctx context.Context, authorID string, input CreatePostInput) (*domain.Post, error) {
	if errs := validator.ValidatePost(input.Content); errs.HasErrors() {
		return nil, domain.NewValidationError(errs.First())
	}

	author, err := parseID(authorID, "AuthorId")
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, author)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	post := &domain.Post{
		ID:        uuid.New(),
		Content:   input.Content,
		Tags:      tags,
		ImgURL:    input.ImgURL,
		AuthorID:  author,
		Comments:  []domain.Comment{},
		Likes:     []domain.Like{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	if err := s.invalidateFeed(ctx); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPosts returns the feed, newest first. A cache hit is returned as stored;
// a miss (or an unreadable cache) reads Postgres and repopulates the cache
// unless a post mutation invalidated it in the meantime.
func (s *PostService) GetPosts(ctx context.Context) ([]domain.Post, error) {
	cached, gen, ok, err := s.feed.Get(ctx)
	switch {
	case err != nil:
		s.metrics.FeedCacheLookup(metrics.CacheError)
		s.logger.WithContext(ctx).WithError(err).Warn("feed cache read failed, falling back to database")
	case ok:
		s.metrics.FeedCacheLookup(metrics.CacheHit)
		return cached, nil
	default:
		s.metrics.FeedCacheLookup(metrics.CacheMiss)
	}

	posts, err := s.postRepo.ListWithAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	stored, err := s.feed.Set(ctx, gen, posts)
	switch {
	case err != nil:
		s.logger.WithContext(ctx).WithError(err).Warn("feed cache write failed")
	case !stored:
		s.logger.WithContext(ctx).Debug("feed changed during read, skipping cache write")
	}

	return posts, nil
}

// GetPostByID always reads Postgres; the feed cache is not consulted.
func (s *PostService) GetPostByID(ctx context.Context, rawID string) (*domain.Post, error) {
	id, err := parseID(rawID, "PostId")
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByIDWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	return post, nil
}

// AddComment appends a comment by username and returns only that comment.
func (s *PostService) AddComment(ctx context.Context, rawPostID, content, username string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewValidationError("Content is required")
	}
	if username == "" {
		return nil, domain.NewValidationError("Username is required")
	}
	postID, err := parseID(rawPostID, "PostId")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := domain.Comment{
		Content:   content,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	found, err := s.postRepo.AppendComment(ctx, postID, comment)
	if err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}
	if !found {
		return nil, ErrPostNotFound
	}

	if err := s.invalidateFeed(ctx); err != nil {
		return nil, err
	}

	return &comment, nil
}

// AddLike appends a like by username. Repeated likes by the same user are
// all recorded; there is no per-user dedup.
func (s *PostService) AddLike(ctx context.Context, rawPostID, username string) (*domain.Like, error) {
	if username == "" {
		return nil, domain.NewValidationError("Username is required")
	}
	postID, err := parseID(rawPostID, "PostId")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	like := domain.Like{
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	found, err := s.postRepo.AppendLike(ctx, postID, like)
	if err != nil {
		return nil, fmt.Errorf("adding like: %w", err)
	}
	if !found {
		return nil, ErrPostNotFound
	}

	if err := s.invalidateFeed(ctx); err != nil {
		return nil, err
	}

	return &like, nil
}

func (s *PostService) invalidateFeed(ctx context.Context) error {
	if err := s.feed.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidating feed cache: %w", err)
	}
	s.metrics.FeedCacheInvalidated()
	return nil
}

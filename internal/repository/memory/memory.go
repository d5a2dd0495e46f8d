// Package memory implements the repository interfaces over in-process maps.
// It backs service and API tests; uniqueness mirrors the Postgres indexes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/repository"
)

type Store struct {
	mu      sync.Mutex
	users   map[uuid.UUID]domain.User
	posts   map[uuid.UUID]domain.Post
	follows []domain.Follow
}

func NewStore() *Store {
	return &Store{
		users: make(map[uuid.UUID]domain.User),
		posts: make(map[uuid.UUID]domain.Post),
	}
}

type UserRepo struct{ s *Store }

func NewUserRepo(s *Store) *UserRepo { return &UserRepo{s: s} }

var (
	_ repository.UserRepository   = (*UserRepo)(nil)
	_ repository.PostRepository   = (*PostRepo)(nil)
	_ repository.FollowRepository = (*FollowRepo)(nil)
)

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return &repository.DuplicateError{Field: "email"}
		}
		if u.Username == user.Username {
			return &repository.DuplicateError{Field: "username"}
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) find(match func(domain.User) bool) *domain.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username }), nil
}

func (r *UserRepo) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := []domain.User{}
	for _, u := range r.s.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepo) SearchByUsername(_ context.Context, query string) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := []domain.User{}
	for _, u := range r.s.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *UserRepo) GetProfile(_ context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	p := &domain.UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Followers: []domain.UserSummary{},
		Following: []domain.UserSummary{},
	}
	for _, f := range r.s.follows {
		if f.FollowerID == id {
			p.Following = append(p.Following, r.s.users[f.FollowingID].Summary())
		}
		if f.FollowingID == id {
			p.Followers = append(p.Followers, r.s.users[f.FollowerID].Summary())
		}
	}
	return p, nil
}

type PostRepo struct{ s *Store }

func NewPostRepo(s *Store) *PostRepo { return &PostRepo{s: s} }

func (r *PostRepo) Create(_ context.Context, post *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[post.ID] = *post
	return nil
}

func (r *PostRepo) withAuthor(p domain.Post) domain.Post {
	if u, ok := r.s.users[p.AuthorID]; ok {
		summary := u.Summary()
		p.AuthorDetails = &summary
	}
	return p
}

func (r *PostRepo) ListWithAuthor(_ context.Context) ([]domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	posts := []domain.Post{}
	for _, p := range r.s.posts {
		posts = append(posts, r.withAuthor(p))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (r *PostRepo) GetByIDWithAuthor(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	p = r.withAuthor(p)
	return &p, nil
}

func (r *PostRepo) AppendComment(_ context.Context, postID uuid.UUID, c domain.Comment) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return false, nil
	}
	p.Comments = append(p.Comments, c)
	r.s.posts[postID] = p
	return true, nil
}

func (r *PostRepo) AppendLike(_ context.Context, postID uuid.UUID, l domain.Like) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return false, nil
	}
	p.Likes = append(p.Likes, l)
	r.s.posts[postID] = p
	return true, nil
}

type FollowRepo struct{ s *Store }

func NewFollowRepo(s *Store) *FollowRepo { return &FollowRepo{s: s} }

func (r *FollowRepo) Create(_ context.Context, f *domain.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.follows {
		if existing.FollowerID == f.FollowerID && existing.FollowingID == f.FollowingID {
			return &repository.DuplicateError{Field: "follow"}
		}
	}
	r.s.follows = append(r.s.follows, *f)
	return nil
}

func (r *FollowRepo) Get(_ context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return &f, nil
		}
	}
	return nil, nil
}

package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/cache"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/logging"
	"github.com/neubri/threads-clone/internal/metrics"
	"github.com/neubri/threads-clone/internal/repository/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingPostRepo counts feed reads that reach the store. afterList, when
// set, runs once after the next read has loaded its rows.
type countingPostRepo struct {
	*memory.PostRepo
	listCalls int
	afterList func()
}

func (r *countingPostRepo) ListWithAuthor(ctx context.Context) ([]domain.Post, error) {
	r.listCalls++
	posts, err := r.PostRepo.ListWithAuthor(ctx)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return posts, err
}

type postFixture struct {
	svc    *PostService
	posts  *countingPostRepo
	redis  *miniredis.Miniredis
	reg    *prometheus.Registry
	author domain.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	store := memory.NewStore()
	userRepo := memory.NewUserRepo(store)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	author := domain.User{ID: uuid.New(), Name: "Alice", Username: "alice", Email: "alice@mail.com", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(context.Background(), &author))

	posts := &countingPostRepo{PostRepo: memory.NewPostRepo(store)}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := NewPostService(posts, userRepo, cache.NewFeedCache(client), logging.New("test", "error", "json"), m)

	return &postFixture{svc: svc, posts: posts, redis: mr, reg: reg, author: author}
}

func (f *postFixture) create(t *testing.T, content string) *domain.Post {
	t.Helper()
	p, err := f.svc.CreatePost(context.Background(), f.author.ID.String(), CreatePostInput{Content: content})
	require.NoError(t, err)
	return p
}

func (f *postFixture) lookups(t *testing.T, result string) float64 {
	t.Helper()
	families, err := f.reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "threads_feed_cache_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "result" && lp.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestCreatePost_Defaults(t *testing.T) {
	f := newPostFixture(t)
	p := f.create(t, "hello")

	assert.Equal(t, f.author.ID, p.AuthorID)
	assert.Equal(t, []string{}, p.Tags)
	assert.Empty(t, p.Comments)
	assert.Empty(t, p.Likes)
	assert.Nil(t, p.ImgURL)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreatePost_Validation(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePost(ctx, f.author.ID.String(), CreatePostInput{Content: "  "})
	assert.EqualError(t, err, "Content is required")

	_, err = f.svc.CreatePost(ctx, "", CreatePostInput{Content: "x"})
	assert.EqualError(t, err, "AuthorId is required")

	_, err = f.svc.CreatePost(ctx, uuid.NewString(), CreatePostInput{Content: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetPosts_CacheRoundTrip(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	f.create(t, "first")
	f.create(t, "second")

	posts, err := f.svc.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.True(t, f.redis.Exists(cache.FeedKey))
	assert.Equal(t, 1, f.posts.listCalls)

	// served from cache
	posts, err = f.svc.GetPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, 1, f.posts.listCalls)

	third := f.create(t, "third")
	assert.False(t, f.redis.Exists(cache.FeedKey))

	posts, err = f.svc.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, third.ID, posts[0].ID)
	assert.Equal(t, 2, f.posts.listCalls)

	assert.Equal(t, float64(1), f.lookups(t, metrics.CacheHit))
	assert.Equal(t, float64(2), f.lookups(t, metrics.CacheMiss))
}

func TestGetPosts_WriteDuringReadIsNotCachedStale(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	f.create(t, "one")

	f.posts.afterList = func() { f.create(t, "two") }

	posts, err := f.svc.GetPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.False(t, f.redis.Exists(cache.FeedKey))

	posts, err = f.svc.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "two", posts[0].Content)

	// the fresh read is cached and served from then on
	posts, err = f.svc.GetPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, 2, f.posts.listCalls)
}

func TestGetPosts_IncludesAuthorDetails(t *testing.T) {
	f := newPostFixture(t)
	f.create(t, "hello")

	posts, err := f.svc.GetPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].AuthorDetails)
	assert.Equal(t, "alice", posts[0].AuthorDetails.Username)
}

func TestGetPosts_CorruptCacheFallsBack(t *testing.T) {
	f := newPostFixture(t)
	f.create(t, "hello")
	require.NoError(t, f.redis.Set(cache.FeedKey, "not json"))

	posts, err := f.svc.GetPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, float64(1), f.lookups(t, metrics.CacheError))
}

func TestAddComment(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.create(t, "hello")

	_, err := f.svc.GetPosts(ctx)
	require.NoError(t, err)

	c, err := f.svc.AddComment(ctx, p.ID.String(), "nice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "nice", c.Content)
	assert.Equal(t, "bob", c.Username)
	assert.False(t, f.redis.Exists(cache.FeedKey))

	got, err := f.svc.GetPostByID(ctx, p.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "bob", got.Comments[0].Username)
}

func TestAddComment_Errors(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddComment(ctx, uuid.NewString(), "", "bob")
	assert.EqualError(t, err, "Content is required")

	_, err = f.svc.AddComment(ctx, "", "hi", "bob")
	assert.EqualError(t, err, "PostId is required")

	_, err = f.svc.AddComment(ctx, uuid.NewString(), "hi", "bob")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddLike_DuplicatesAreKept(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.create(t, "hello")

	for i := 0; i < 2; i++ {
		l, err := f.svc.AddLike(ctx, p.ID.String(), "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", l.Username)
	}

	got, err := f.svc.GetPostByID(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Len(t, got.Likes, 2)
}

func TestGetPostByID_Errors(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetPostByID(ctx, "abc")
	assert.EqualError(t, err, "Invalid PostId")

	_, err = f.svc.GetPostByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

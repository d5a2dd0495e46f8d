package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, users *memory.UserRepo, usernames ...string) []domain.User {
	t.Helper()
	out := make([]domain.User, 0, len(usernames))
	for _, name := range usernames {
		u := domain.User{ID: uuid.New(), Name: name, Username: name, Email: name + "@mail.com", PasswordHash: "hash"}
		require.NoError(t, users.Create(context.Background(), &u))
		out = append(out, u)
	}
	return out
}

func TestFollowUser(t *testing.T) {
	store := memory.NewStore()
	userRepo := memory.NewUserRepo(store)
	users := seedUsers(t, userRepo, "alice", "bob")
	svc := NewFollowService(memory.NewFollowRepo(store), userRepo)

	f, err := svc.FollowUser(context.Background(), users[0].ID.String(), users[1].ID.String())
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, f.FollowerID)
	assert.Equal(t, users[1].ID, f.FollowingID)

	_, err = svc.FollowUser(context.Background(), users[0].ID.String(), users[1].ID.String())
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	// reverse direction is a distinct edge
	_, err = svc.FollowUser(context.Background(), users[1].ID.String(), users[0].ID.String())
	assert.NoError(t, err)
}

func TestFollowUser_Errors(t *testing.T) {
	store := memory.NewStore()
	userRepo := memory.NewUserRepo(store)
	users := seedUsers(t, userRepo, "alice")
	svc := NewFollowService(memory.NewFollowRepo(store), userRepo)
	ctx := context.Background()
	alice := users[0].ID.String()

	_, err := svc.FollowUser(ctx, alice, "")
	assert.EqualError(t, err, "FollowingId is required")

	_, err = svc.FollowUser(ctx, "", alice)
	assert.EqualError(t, err, "FollowerId is required")

	_, err = svc.FollowUser(ctx, alice, alice)
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.True(t, domain.IsKind(err, domain.KindSelfFollow))

	_, err = svc.FollowUser(ctx, alice, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileGraph(t *testing.T) {
	store := memory.NewStore()
	userRepo := memory.NewUserRepo(store)
	users := seedUsers(t, userRepo, "alice", "bob", "carol")
	follows := NewFollowService(memory.NewFollowRepo(store), userRepo)
	usersSvc := NewUserService(userRepo, nil)
	ctx := context.Background()

	alice, bob, carol := users[0].ID.String(), users[1].ID.String(), users[2].ID.String()
	_, err := follows.FollowUser(ctx, alice, bob)
	require.NoError(t, err)
	_, err = follows.FollowUser(ctx, carol, alice)
	require.NoError(t, err)

	profile, err := usersSvc.GetProfile(ctx, alice)
	require.NoError(t, err)
	require.Len(t, profile.Following, 1)
	require.Len(t, profile.Followers, 1)
	assert.Equal(t, "bob", profile.Following[0].Username)
	assert.Equal(t, "carol", profile.Followers[0].Username)

	profile, err = usersSvc.GetProfile(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, profile.Following)
	require.Len(t, profile.Followers, 1)
	assert.Equal(t, "alice", profile.Followers[0].Username)
}

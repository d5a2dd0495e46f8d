package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_ResolvesBothSides(t *testing.T) {
	store := NewStore()
	users := NewUserRepo(store)
	follows := NewFollowRepo(store)
	ctx := context.Background()

	alice := domain.User{ID: uuid.New(), Name: "Alice", Username: "alice", Email: "alice@mail.com", PasswordHash: "secret"}
	bob := domain.User{ID: uuid.New(), Name: "Bob", Username: "bob", Email: "bob@mail.com", PasswordHash: "secret"}
	require.NoError(t, users.Create(ctx, &alice))
	require.NoError(t, users.Create(ctx, &bob))
	require.NoError(t, follows.Create(ctx, &domain.Follow{ID: uuid.New(), FollowerID: alice.ID, FollowingID: bob.ID}))

	p, err := users.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []domain.UserSummary{bob.Summary()}, p.Following)
	assert.Empty(t, p.Followers)

	p, err = users.GetProfile(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserSummary{alice.Summary()}, p.Followers)

	p, err = users.GetProfile(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUniquenessMatchesStoreIndexes(t *testing.T) {
	store := NewStore()
	users := NewUserRepo(store)
	follows := NewFollowRepo(store)
	ctx := context.Background()

	a := domain.User{ID: uuid.New(), Username: "alice", Email: "alice@mail.com"}
	require.NoError(t, users.Create(ctx, &a))

	err := users.Create(ctx, &domain.User{ID: uuid.New(), Username: "other", Email: "alice@mail.com"})
	var dup *repository.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)

	edge := domain.Follow{ID: uuid.New(), FollowerID: a.ID, FollowingID: uuid.New()}
	require.NoError(t, follows.Create(ctx, &edge))
	assert.ErrorIs(t, follows.Create(ctx, &edge), repository.ErrDuplicate)
}

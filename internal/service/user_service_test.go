package service

import (
	"context"
	"testing"
	"time"

	"github.com/neubri/threads-clone/internal/auth"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newUserService(t *testing.T) (*UserService, *memory.UserRepo, *auth.TokenCodec) {
	t.Helper()
	repo := memory.NewUserRepo(memory.NewStore())
	codec, err := auth.NewTokenCodec(testSecret, time.Hour)
	require.NoError(t, err)
	return NewUserService(repo, codec), repo, codec
}

func register(t *testing.T, svc *UserService, username string) {
	t.Helper()
	msg, err := svc.Register(context.Background(), RegisterInput{
		Name:     "User " + username,
		Username: username,
		Email:    username + "@mail.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, RegisterSuccess, msg)
}

func TestRegister_StoresHashedPassword(t *testing.T) {
	svc, repo, _ := newUserService(t)
	register(t, svc, "alice")

	u, _ := repo.GetByEmail(context.Background(), "alice@mail.com")
	require.NotNil(t, u)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, auth.VerifyPassword("secret1", u.PasswordHash))
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newUserService(t)

	tests := []struct {
		name  string
		input RegisterInput
		want  string
	}{
		{"missing name", RegisterInput{Username: "a", Email: "a@mail.com", Password: "12345"}, "Name is required"},
		{"missing username", RegisterInput{Name: "A", Email: "a@mail.com", Password: "12345"}, "Username is required"},
		{"missing email", RegisterInput{Name: "A", Username: "a", Password: "12345"}, "Email is required"},
		{"short password", RegisterInput{Name: "A", Username: "a", Email: "a@mail.com", Password: "1234"}, "Password must be at least 5 character"},
		{"short multibyte password", RegisterInput{Name: "A", Username: "a", Email: "a@mail.com", Password: "ééé"}, "Password must be at least 5 character"},
		{"bad email", RegisterInput{Name: "A", Username: "a", Email: "nope", Password: "12345"}, "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindValidation))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	svc, _, _ := newUserService(t)
	register(t, svc, "alice")

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Other", Username: "other", Email: "alice@mail.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name: "Other", Username: "alice", Email: "other@mail.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, _, codec := newUserService(t)
	register(t, svc, "alice")

	token, err := svc.Login(context.Background(), LoginInput{Email: "alice@mail.com", Password: "secret1"})
	require.NoError(t, err)

	id, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, "alice@mail.com", id.Email)
	assert.NotEmpty(t, id.ID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newUserService(t)
	register(t, svc, "alice")

	_, unknown := svc.Login(context.Background(), LoginInput{Email: "bob@mail.com", Password: "secret1"})
	_, wrong := svc.Login(context.Background(), LoginInput{Email: "alice@mail.com", Password: "wrong-pass"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.Equal(t, "Invalid email/password", wrong.Error())
	assert.True(t, domain.IsKind(wrong, domain.KindAuthentication))
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.Login(context.Background(), LoginInput{Password: "x"})
	assert.EqualError(t, err, "Email is required")

	_, err = svc.Login(context.Background(), LoginInput{Email: "a@mail.com"})
	assert.EqualError(t, err, "Password is required")
}

func TestGetProfile(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.GetProfile(context.Background(), "")
	assert.EqualError(t, err, "UserId is required")

	_, err = svc.GetProfile(context.Background(), "not-a-uuid")
	assert.EqualError(t, err, "Invalid UserId")

	_, err = svc.GetProfile(context.Background(), "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchByUsername(t *testing.T) {
	svc, _, _ := newUserService(t)
	register(t, svc, "alice")
	register(t, svc, "malik")
	register(t, svc, "bob")

	users, err := svc.SearchByUsername(context.Background(), "LI")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.SearchByUsername(context.Background(), " ")
	assert.EqualError(t, err, "Username is required")
}

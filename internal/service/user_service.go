package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neubri/threads-clone/internal/auth"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/repository"
	"github.com/neubri/threads-clone/pkg/validator"
)

const RegisterSuccess = "Register success"

type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenCodec
}

func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenCodec) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user after the email and username uniqueness checks.
// The checks are not atomic with the insert; the store's unique indexes
// reject whichever concurrent duplicate loses the race.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (string, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if errs := validator.ValidateRegister(input.Name, input.Username, input.Email, input.Password); errs.HasErrors() {
		return "", domain.NewValidationError(errs.First())
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	existing, err = s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUsernameTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			if dup.Field == "username" {
				return "", ErrUsernameTaken
			}
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("creating user: %w", err)
	}

	return RegisterSuccess, nil
}

// Login returns a session token. Unknown email and wrong password fail with
// the same error so callers cannot tell which one was wrong.
func (s *UserService) Login(ctx context.Context, input LoginInput) (string, error) {
	if errs := validator.ValidateLogin(input.Email, input.Password); errs.HasErrors() {
		return "", domain.NewValidationError(errs.First())
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCreds
	}

	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return "", ErrInvalidCreds
	}

	token, err := s.tokens.Issue(auth.Identity{
		ID:       user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	return token, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

// GetProfile returns the user with followers and following resolved.
func (s *UserService) GetProfile(ctx context.Context, rawID string) (*domain.UserProfile, error) {
	id, err := parseID(rawID, "UserId")
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	return profile, nil
}

// SearchByUsername returns every user whose username contains query, ignoring case.
func (s *UserService) SearchByUsername(ctx context.Context, query string) ([]domain.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("Username is required")
	}
	return s.userRepo.SearchByUsername(ctx, query)
}

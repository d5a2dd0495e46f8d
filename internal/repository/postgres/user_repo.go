package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/neubri/threads-clone/internal/domain"
)

const userColumns = "id, name, username, email, password_hash, created_at, updated_at"

type UserRepo struct {
	db DB
}

func NewUserRepo(db DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Username, user.Email,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	return translateError(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.queryUsers(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at")
}

// SearchByUsername matches query as a case-insensitive substring of the username.
func (r *UserRepo) SearchByUsername(ctx context.Context, query string) ([]domain.User, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.queryUsers(ctx,
		"SELECT "+userColumns+` FROM users WHERE username ILIKE $1 ESCAPE '\' ORDER BY username`,
		pattern,
	)
}

// GetProfile loads a user with the users it follows and the users following it,
// each side resolved through the follows table in one round trip.
func (r *UserRepo) GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	query := `
		SELECT u.id, u.name, u.username, u.email,
			COALESCE((
				SELECT json_agg(json_build_object(
					'_id', fu.id, 'name', fu.name, 'username', fu.username, 'email', fu.email
				) ORDER BY f.created_at)
				FROM follows f
				JOIN users fu ON fu.id = f.following_id
				WHERE f.follower_id = u.id
			), '[]'::json) AS following,
			COALESCE((
				SELECT json_agg(json_build_object(
					'_id', fu.id, 'name', fu.name, 'username', fu.username, 'email', fu.email
				) ORDER BY f.created_at)
				FROM follows f
				JOIN users fu ON fu.id = f.follower_id
				WHERE f.following_id = u.id
			), '[]'::json) AS followers
		FROM users u
		WHERE u.id = $1`

	var p domain.UserProfile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Username, &p.Email, &p.Following, &p.Followers,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.Following == nil {
		p.Following = []domain.UserSummary{}
	}
	if p.Followers == nil {
		p.Followers = []domain.UserSummary{}
	}
	return &p, nil
}

func (r *UserRepo) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Username, &u.Email,
			&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

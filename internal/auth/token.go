package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/neubri/threads-clone/internal/domain"
)

// Identity is the caller identity carried by a session token.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Claims is the JWT payload. The client reads "id" straight from the token.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 session tokens with one process-wide secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var ErrEmptySecret = errors.New("token secret must not be empty")

// NewTokenCodec builds a codec. A ttl of zero issues tokens that never expire.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (c *TokenCodec) Issue(id Identity) (string, error) {
	now := c.now()
	claims := Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature, algorithm and expiry. Every failure is a *domain.InvalidTokenError.
func (c *TokenCodec) Verify(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, &domain.InvalidTokenError{Reason: err}
	}
	if !token.Valid {
		return nil, &domain.InvalidTokenError{}
	}
	if claims.Identity.ID == "" {
		return nil, &domain.InvalidTokenError{Reason: errors.New("token carries no user id")}
	}

	id := claims.Identity
	return &id, nil
}

package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/neubri/threads-clone/internal/domain"
)

var (
	ErrMissingToken  = domain.NewAuthenticationError("Invalid token")
	ErrMalformedAuth = domain.NewAuthenticationError("Unauthorized")
)

// Session is the per-request authorization state. It holds the raw
// Authorization header and verifies it only when an operation asks for the
// caller's identity, so anonymous operations share the same pipeline.
type Session struct {
	header string
	codec  *TokenCodec

	once     sync.Once
	identity *Identity
	err      error
}

func NewSession(codec *TokenCodec, authorizationHeader string) *Session {
	return &Session{codec: codec, header: authorizationHeader}
}

// Identity resolves the caller. The result is computed once per request.
func (s *Session) Identity() (*Identity, error) {
	s.once.Do(func() {
		s.identity, s.err = s.resolve()
	})
	return s.identity, s.err
}

func (s *Session) resolve() (*Identity, error) {
	if s.header == "" {
		return nil, ErrMissingToken
	}

	// only the first two space-separated fields count; anything after is ignored
	parts := strings.Split(s.header, " ")
	if len(parts) < 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, ErrMalformedAuth
	}

	return s.codec.Verify(parts[1])
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// RequireIdentity returns the verified caller for ctx or an authentication error.
// A context that never passed through the session middleware is unauthenticated.
func RequireIdentity(ctx context.Context) (*Identity, error) {
	s := SessionFrom(ctx)
	if s == nil {
		return nil, ErrMissingToken
	}
	return s.Identity()
}

package middleware

import (
	"net/http"

	"github.com/neubri/threads-clone/internal/auth"
)

// Session attaches a lazily verified auth.Session to every request.
// Nothing is rejected here: operations that need a caller call
// auth.RequireIdentity and fail individually, so login and register
// pass through the same endpoint without a token.
func Session(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := auth.NewSession(codec, r.Header.Get("Authorization"))
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
		})
	}
}

package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type ctxKey int

const userIDKey ctxKey = iota

// Auth verifies the bearer token issued by the identity provider (HS256,
// shared secret) and stores the verified subject in the request context.
// The rest of the stack only ever sees that verified identity; nothing
// downstream reads raw credentials.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(ah, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))

			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				log.Warn().Err(err).Str("remote", remoteIP(r)).Msg("token verification failed")
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userID returns the verified identity set by Auth; empty when the route
// was not behind the middleware.
func userID(r *http.Request) string {
	s, _ := r.Context().Value(userIDKey).(string)
	return s
}

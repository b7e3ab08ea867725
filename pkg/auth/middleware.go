package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Middleware requires a valid "Authorization: Bearer <token>" header on every path not listed in public,
// and puts the token's user into the request context.
func Middleware(service Service, public ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range public {
				if r.URL.Path == path {
					next.ServeHTTP(w, r)
					return
				}
			}

			value, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				w.Header().Set("WWW-Authenticate", TokenType)
				rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			u, err := service.Validate(r.Context(), value)
			if err != nil {
				if errors.Is(err, ErrInvalidToken) {
					w.Header().Set("WWW-Authenticate", TokenType)
					rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
					return
				}
				log.Errorf("failed to validate token: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			log.Tracef("request authenticated as %s", u.Username)
			next.ServeHTTP(w, r.WithContext(user.WithUser(r.Context(), u)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, value, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, TokenType) {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

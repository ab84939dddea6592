package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// token and stores the decoded principal in the request context.
func RequireBearer(tokens ports.TokenIssuer, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, r, logger, domain.ErrTokenInvalid)
				return
			}

			principal, err := tokens.Validate(raw)
			if err != nil {
				kind := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					kind = "expired"
				}
				logger.Warn(r.Context(), "rejected access token", "kind", kind, "path", r.URL.Path)
				writeError(w, r, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func principalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(domain.Principal)
	return p, ok
}

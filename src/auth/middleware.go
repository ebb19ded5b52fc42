package auth

import (
	"context"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/zjurelinac/East/src/apierror"
	"github.com/zjurelinac/East/src/model"
)

// TokenResolver resolves an API token to its owner. A (nil, nil) result
// means the token matches nobody.
type TokenResolver interface {
	FindByAPIToken(ctx context.Context, token string) (*model.User, error)
}

// RequireUser resolves the request's API token (Authorization: Bearer or
// X-API-Token) into a user and stores it in the request context. Requests
// without a valid token get a 401.
func RequireUser(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := requestToken(r)
			if token == "" {
				apierror.Write(w, apierror.NewUnauthorizedError("missing API token"))
				return
			}

			user, err := resolver.FindByAPIToken(r.Context(), token)
			if err != nil {
				logger.WithError(err).Error("failed to resolve API token")
				apierror.Write(w, err)
				return
			}
			if user == nil || !user.Active {
				apierror.Write(w, apierror.NewUnauthorizedError("invalid API token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(r.Header.Get("X-API-Token"))
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/service"
	"github.com/aussiebroadwan/orgs/pkg/httpx"
)

// ProvisionUser mirrors the verified caller into the users table so that
// ownership and membership rows can reference them. It must run after
// httpx.AuthnMiddleware.
func ProvisionUser(ids *service.IdentityService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := httpx.ClaimsFromContext(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			err := ids.EnsureUser(r.Context(), domain.User{
				ID:    claims.Subject,
				Name:  claims.DisplayName(),
				Email: claims.Email,
			})
			if err != nil {
				writeServiceError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/linkboard-dev/linkboard/internal/domain"
	"github.com/linkboard-dev/linkboard/internal/service"
	"github.com/linkboard-dev/linkboard/internal/session"
)

// SessionCookieName is the cookie browser clients carry the session token in.
const SessionCookieName = "__share_session"

type key int

const (
	identityKey key = iota
	rolesKey
)

// Identity resolves the requester's identity from the session token (cookie
// or Bearer). A missing or invalid token is not an error: the request simply
// proceeds as an external visitor.
func Identity(sessions session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := domain.External()

			if tokenStr := extractToken(r); tokenStr != "" {
				if resolved, err := sessions.Identity(tokenStr); err == nil {
					identity = resolved
				}
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return token
	}
	return ""
}

// Roles derives the role set for the resolved identity and stores it in the
// request context. Must run after Identity.
func Roles(roles service.RoleService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentityFromContext(r)
			roleSet := roles.Derive(r.Context(), identity)

			ctx := context.WithValue(r.Context(), rolesKey, roleSet)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityFromContext returns the resolved identity, defaulting to an
// external visitor when the middleware did not run.
func GetIdentityFromContext(r *http.Request) domain.Identity {
	if identity, ok := r.Context().Value(identityKey).(domain.Identity); ok {
		return identity
	}
	return domain.External()
}

func GetRolesFromContext(r *http.Request) domain.RoleSet {
	if roles, ok := r.Context().Value(rolesKey).(domain.RoleSet); ok {
		return roles
	}
	return domain.RoleSet{ExternalUser: true}
}

// WithIdentity injects an identity into the request context. Test helper.
func WithIdentity(r *http.Request, identity domain.Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, identity))
}

// WithRoles injects a role set into the request context. Test helper.
func WithRoles(r *http.Request, roles domain.RoleSet) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), rolesKey, roles))
}

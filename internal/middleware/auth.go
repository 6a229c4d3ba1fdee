// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
)

const IdentityKey contextKey = "identity"

// Identity is the freshly resolved caller: role and organization come
// from the credential store at request time, never from token claims, so
// role changes and deactivation take effect on the very next request.
type Identity struct {
	UserID         string
	Username       string
	OrganizationID *string
	Role           authz.Role
}

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*Identity, error)
}

// Authenticator rejects requests without a valid bearer token before any
// handler logic runs.
func Authenticator(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(w, core.AuthenticationRequiredError())
				return
			}

			identity, err := resolver.ResolveIdentity(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates an already-authenticated route to the given roles.
func RequireRole(roles ...authz.Role) func(http.Handler) http.Handler {
	roleSet := make(map[authz.Role]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				core.JSONError(w, core.AuthenticationRequiredError())
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				core.JSONError(w, core.ForbiddenError(""))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken pulls the bearer token out of the Authorization header.
// Returns "" for a missing header or any non-Bearer scheme.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrAccountInactive):
		core.JSONError(w, core.AccountInactiveError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.UserID
	}
	return ""
}

func GetUserRole(ctx context.Context) authz.Role {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.Role
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetIdentity(ctx) != nil
}

package middleware

import (
	"net/http"

	"github.com/amaclone/storefront/api/responses"
	"github.com/amaclone/storefront/pkg/enums"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
)

// RequireRole admits requests whose token role is one of roles. It must run after Auth.
func RequireRole(role enums.UserRole, logg *logger.Logger, more ...enums.UserRole) func(http.Handler) http.Handler {
	allowed := map[string]struct{}{string(role): {}}
	for _, r := range more {
		allowed[string(r)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if UserIDFromContext(ctx) == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			if _, ok := allowed[RoleFromContext(ctx)]; !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.Newf(pkgerrors.CodeForbidden, "%s role required", role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

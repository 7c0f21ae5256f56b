package middleware

import (
	"net/http"
	"slices"

	"github.com/angelmondragon/orderview-backend/api/responses"
	"github.com/angelmondragon/orderview-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/orderview-backend/pkg/errors"
	"github.com/angelmondragon/orderview-backend/pkg/logger"
)

// RequireRole admits only employees holding one of roles.
func RequireRole(logg *logger.Logger, roles ...enums.EmployeeRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, RoleFromContext(r.Context())) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

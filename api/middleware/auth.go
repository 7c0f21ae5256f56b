package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/orderview-backend/api/responses"
	pkgAuth "github.com/angelmondragon/orderview-backend/pkg/auth"
	"github.com/angelmondragon/orderview-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/orderview-backend/pkg/errors"
	"github.com/angelmondragon/orderview-backend/pkg/logger"
)

// Auth validates the employee bearer token and seeds the request context with
// the employee id and role.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			employeeID := claims.EmployeeID.String()
			ctx := WithEmployee(r.Context(), employeeID, claims.Role)
			if logg != nil {
				ctx = logg.WithEmployeeID(ctx, employeeID)
				ctx = logg.WithEmployeeRole(ctx, claims.Role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	token := strings.TrimSpace(header)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

const (
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"

	msgMissingUser = "отсутствует имя пользователя"
)

type contextKey string

const (
	userNameKey contextKey = "user_name"
	userRoleKey contextKey = "user_role"
)

// Auth достаёт пользователя и роль из заголовков. Роль ничем не подтверждена и
// используется только для скрытия административных действий.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.Header.Get(HeaderUserName))
		if name == "" {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}

		role := strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))
		if role != domain.RoleAdmin {
			role = domain.RoleStaff
		}

		ctx := context.WithValue(r.Context(), userNameKey, name)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserName имя пользователя из контекста
func GetUserName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(userNameKey).(string)
	return name, ok && name != ""
}

// GetRole роль из контекста, по умолчанию staff
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(userRoleKey).(string); ok && role != "" {
		return role
	}
	return domain.RoleStaff
}

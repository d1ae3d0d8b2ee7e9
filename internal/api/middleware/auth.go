package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

const (
	// HeaderUserID заголовок с идентификатором пользователя
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя (customer | owner)
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const actorContextKey contextKey = "actor"

// Auth проверяет заголовки аутентификации и кладет domain.Actor в контекст.
// Аутентификацию выполняет API gateway, сервис доверяет заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			respondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			respondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		switch role {
		case domain.RoleCustomer, domain.RoleOwner:
		case "":
			role = domain.RoleCustomer
		default:
			respondUnauthorized(w, "некорректный заголовок X-User-Role")
			return
		}

		actor := domain.Actor{UserID: userID, Role: role}
		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext извлекает актора, положенного Auth middleware
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	return actor, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
